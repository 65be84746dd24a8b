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

package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	colorRed    = color.New(color.FgRed)
	colorGreen  = color.New(color.FgGreen)
	colorYellow = color.New(color.FgYellow)
	colorGray   = color.New(color.FgHiBlack)
)

// printSuccess prints a success message followed by a newline
func printSuccess(w io.Writer, msg string, v ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", colorGreen.Sprint("✔"), fmt.Sprintf(msg, v...))
}

// printWarn prints a warning followed by a newline
func printWarn(w io.Writer, msg string, v ...interface{}) {
	fmt.Fprintf(w, "%s %s\n", colorYellow.Sprint("•"), fmt.Sprintf(msg, v...))
}

// printField prints an indented label and value pair
func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %s %s\n", colorGray.Sprint(label+":"), value)
}

// PrintError prints an error the way every subcommand reports failures
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s\n", colorRed.Sprint("⨯"), err.Error())
}
