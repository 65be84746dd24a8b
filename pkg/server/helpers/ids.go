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

// Package helpers provides identifiers shared by the server packages
package helpers

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NewRequestID returns a random identifier for an incoming request
func NewRequestID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "generating request id")
	}

	return id.String(), nil
}

// IsRequestID reports whether s can be used as a request id. Only the
// hyphenated form of a version 4 uuid is accepted, so that a client cannot
// smuggle braces or urn prefixes into the logs.
func IsRequestID(s string) bool {
	if len(s) != 36 {
		return false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return false
	}

	return id.Version() == 4
}

// NewMemoryDSN returns the DSN of a private in-memory sqlite database with
// foreign keys enforced. Connections opened with the same DSN share the data.
func NewMemoryDSN() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.Wrap(err, "generating database name")
	}

	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", id.String()), nil
}
