/* Copyright 2025 Studytrack Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package prompt asks yes/no questions on a terminal before destructive
// operations such as removing a user and all of their study data.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// FormatQuestion formats a yes/no question with the appropriate choice indicator
func FormatQuestion(question string, optimistic bool) string {
	choices := "(y/N)"
	if optimistic {
		choices = "(Y/n)"
	}

	return fmt.Sprintf("%s %s", question, choices)
}

// parseAnswer interprets a single line of input. In optimistic mode an empty
// answer counts as a yes.
func parseAnswer(input string, optimistic bool) bool {
	input = strings.ToLower(strings.TrimSpace(input))

	switch input {
	case "y", "yes":
		return true
	case "":
		return optimistic
	default:
		return false
	}
}

// Confirm writes the question to w and reads one line of answer from r.
// Reaching the end of input without a newline still counts as an answer.
func Confirm(r io.Reader, w io.Writer, question string, optimistic bool) (bool, error) {
	if _, err := fmt.Fprint(w, FormatQuestion(question, optimistic)+" "); err != nil {
		return false, errors.Wrap(err, "writing question")
	}

	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(err, "reading answer")
	}

	return parseAnswer(input, optimistic), nil
}
