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

package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/assert"
)

func TestShouldLog(t *testing.T) {
	defer SetLevel(LevelInfo)

	testCases := []struct {
		currentLevel string
		logLevel     string
		expected     bool
	}{
		{LevelDebug, LevelDebug, true},
		{LevelDebug, LevelError, true},
		{LevelInfo, LevelDebug, false},
		{LevelInfo, LevelInfo, true},
		{LevelInfo, LevelWarn, true},
		{LevelWarn, LevelInfo, false},
		{LevelWarn, LevelWarn, true},
		{LevelError, LevelWarn, false},
		{LevelError, LevelError, true},
		{"bogus", LevelInfo, true},
		{"bogus", LevelDebug, false},
	}

	for _, tc := range testCases {
		SetLevel(tc.currentLevel)

		assert.Equal(t, shouldLog(tc.logLevel), tc.expected, tc.currentLevel+" showing "+tc.logLevel)
	}
}

func TestIsValidLevel(t *testing.T) {
	assert.Equal(t, IsValidLevel(LevelDebug), true, "debug should be valid")
	assert.Equal(t, IsValidLevel(LevelError), true, "error should be valid")
	assert.Equal(t, IsValidLevel("verbose"), false, "verbose should be invalid")
	assert.Equal(t, IsValidLevel(""), false, "empty should be invalid")
}

func TestWrite(t *testing.T) {
	defer SetLevel(LevelInfo)

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	SetLevel(LevelInfo)

	WithFields(Fields{
		"user_id": 7,
		"err":     errors.New("boom"),
	}).Warn("subject delete failed")
	Debug("hidden")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatal(errors.Wrap(err, "decoding log line"))
	}

	assert.Equal(t, line[fieldKeyLevel], LevelWarn, "level mismatch")
	assert.Equal(t, line[fieldKeyMessage], "subject delete failed", "message mismatch")
	assert.Equal(t, line["user_id"], float64(7), "user_id mismatch")
	assert.Equal(t, line["err"], "boom", "error field should be stringified")
}

func TestErrorWrap(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	WithFields(Fields{"job": "vacuum"}).ErrorWrap(errors.New("disk full"), "maintenance job failed")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatal(errors.Wrap(err, "decoding log line"))
	}

	assert.Equal(t, line[fieldKeyLevel], LevelError, "level mismatch")
	assert.Equal(t, line[fieldKeyMessage], "maintenance job failed: disk full", "message mismatch")
	assert.Equal(t, line[fieldKeyError], "disk full", "error field mismatch")
	assert.Equal(t, line["job"], "vacuum", "job mismatch")
}

func TestGetLevel(t *testing.T) {
	defer SetLevel(LevelInfo)

	SetLevel(LevelWarn)
	assert.Equal(t, GetLevel(), LevelWarn, "level mismatch")

	SetLevel("bogus")
	assert.Equal(t, GetLevel(), "bogus", "unknown level should be kept as given")
}

func TestConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			WithFields(Fields{"i": i}).Info(fmt.Sprintf("line %d", i))
		}(i)
	}
	wg.Wait()

	count := 0
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var line map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatal(errors.Wrapf(err, "decoding line %q", scanner.Text()))
		}
		count++
	}

	assert.Equal(t, count, n, "line count mismatch")
}
