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

package app

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/assert"
)

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"not found", ErrNotFound, KindNotFound},
		{"wrapped not found", errors.Wrap(ErrNotFound, "finding subject"), KindNotFound},
		{"validation", ErrSubjectNameRequired, KindValidation},
		{"auth", ErrLoginInvalid, KindAuth},
		{"break", ErrBreakActive, KindBreakActive},
		{"plain error", errors.New("disk full"), KindPersistence},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, KindOf(tc.err), tc.expected, "kind mismatch")
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, KindValidation.String(), "validation", "validation mismatch")
	assert.Equal(t, KindAuth.String(), "auth", "auth mismatch")
	assert.Equal(t, KindNotFound.String(), "not_found", "not found mismatch")
	assert.Equal(t, KindBreakActive.String(), "break_active", "break mismatch")
	assert.Equal(t, KindPersistence.String(), "persistence", "persistence mismatch")
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, MessageOf(ErrTopicNameRequired), "topic name is required", "plain message mismatch")
	assert.Equal(t, MessageOf(errors.Wrap(ErrNotFound, "finding topic")), "not found", "wrapped message mismatch")
	assert.Equal(t, MessageOf(errors.New("connection refused")), "", "unknown error message mismatch")
}
