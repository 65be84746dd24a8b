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

package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/studytrack/studytrack/pkg/assert"
	"github.com/studytrack/studytrack/pkg/clock"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/presenters"
	"github.com/studytrack/studytrack/pkg/server/testutils"
)

func TestGetBreak(t *testing.T) {
	t.Run("no break", func(t *testing.T) {
		a, server := setupServer(t)
		user := testutils.SetupUserData(a.DB, "alice", "pass1234")

		req := testutils.MakeReq(server.URL, "GET", "/api/break", "")
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var got presenters.BreakState
		testutils.MustDecodeJSON(t, res, &got)
		assert.Equal(t, got.OnBreak, false, "on break mismatch")
		assert.Equal(t, got.RemainingSeconds, 0, "remaining seconds mismatch")
	})

	t.Run("running break", func(t *testing.T) {
		a, server := setupServer(t)
		user := testutils.SetupUserData(a.DB, "alice", "pass1234")
		until := a.Clock.Now().Add(5 * time.Minute)
		testutils.MustExec(t, a.DB.Model(&user).Update("lunch_break_until", until), "starting break")

		req := testutils.MakeReq(server.URL, "GET", "/api/break", "")
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var got presenters.BreakState
		testutils.MustDecodeJSON(t, res, &got)
		assert.Equal(t, got.OnBreak, true, "on break mismatch")
		assert.Equal(t, got.RemainingSeconds, 300, "remaining seconds mismatch")
	})

	t.Run("expired break is cleared", func(t *testing.T) {
		a, server := setupServer(t)
		user := testutils.SetupUserData(a.DB, "alice", "pass1234")
		until := a.Clock.Now().Add(5 * time.Minute)
		testutils.MustExec(t, a.DB.Model(&user).Update("lunch_break_until", until), "starting break")
		a.Clock.(*clock.Mock).Advance(6 * time.Minute)

		req := testutils.MakeReq(server.URL, "GET", "/api/break", "")
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusOK, "")

		var got presenters.BreakState
		testutils.MustDecodeJSON(t, res, &got)
		assert.Equal(t, got.OnBreak, false, "on break mismatch")

		var u database.User
		testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&u), "finding user")
		assert.Equal(t, u.LunchBreakUntil == nil, true, "lunch_break_until should be cleared")
	})
}

func TestToggleBreak(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		breakRunning    bool
		expectedOnBreak bool
	}{
		{
			name:            "explicit on",
			body:            `{"on": true}`,
			breakRunning:    false,
			expectedOnBreak: true,
		},
		{
			name:            "empty body ends running break",
			body:            "",
			breakRunning:    true,
			expectedOnBreak: false,
		},
		{
			name:            "missing on does not start a break",
			body:            `{}`,
			breakRunning:    false,
			expectedOnBreak: false,
		},

		{
			name:            "explicit on while running restarts",
			body:            `{"on": true}`,
			breakRunning:    true,
			expectedOnBreak: true,
		},
		{
			name:            "explicit off without break",
			body:            `{"on": false}`,
			breakRunning:    false,
			expectedOnBreak: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, server := setupServer(t)
			user := testutils.SetupUserData(a.DB, "alice", "pass1234")
			testutils.MustExec(t, a.DB.Model(&user).Update("break_duration_minutes", 45), "setting break duration")
			if tc.breakRunning {
				until := a.Clock.Now().Add(time.Minute)
				testutils.MustExec(t, a.DB.Model(&user).Update("lunch_break_until", until), "starting break")
			}

			req := testutils.MakeReq(server.URL, "POST", "/api/break", tc.body)
			res := testutils.HTTPAuthDo(t, a.DB, req, user)

			assert.StatusCodeEquals(t, res, http.StatusOK, "")

			var got presenters.BreakState
			testutils.MustDecodeJSON(t, res, &got)
			assert.Equal(t, got.OnBreak, tc.expectedOnBreak, "on break mismatch")

			var u database.User
			testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&u), "finding user")
			if tc.expectedOnBreak {
				if u.LunchBreakUntil == nil {
					t.Fatal("lunch_break_until should be set")
				}
				assert.Equal(t, u.LunchBreakUntil.Equal(a.Clock.Now().Add(45*time.Minute)), true, "break end mismatch")
				assert.Equal(t, got.RemainingSeconds, 45*60, "remaining seconds mismatch")
			} else {
				assert.Equal(t, u.LunchBreakUntil == nil, true, "lunch_break_until should be cleared")
			}
		})
	}
}

func TestUpdateBreakDuration(t *testing.T) {
	testCases := []struct {
		body           string
		expectedStatus int
		expectedValue  int
	}{
		{
			body:           `{"minutes": 45}`,
			expectedStatus: http.StatusOK,
			expectedValue:  45,
		},
		{
			body:           `{"minutes": "15"}`,
			expectedStatus: http.StatusOK,
			expectedValue:  15,
		},
		{
			body:           `{"minutes": 17}`,
			expectedStatus: http.StatusBadRequest,
			expectedValue:  database.DefaultBreakDurationMinutes,
		},
		{
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedValue:  database.DefaultBreakDurationMinutes,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.body, func(t *testing.T) {
			a, server := setupServer(t)
			user := testutils.SetupUserData(a.DB, "alice", "pass1234")

			req := testutils.MakeReq(server.URL, "PATCH", "/api/settings/break", tc.body)
			res := testutils.HTTPAuthDo(t, a.DB, req, user)

			assert.StatusCodeEquals(t, res, tc.expectedStatus, "")

			var u database.User
			testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&u), "finding user")
			assert.Equal(t, u.BreakDurationMinutes, tc.expectedValue, "break duration mismatch")
		})
	}
}

func TestUpdateReminder(t *testing.T) {
	testCases := []struct {
		name             string
		body             string
		expectedStatus   int
		expectedFilename *string
		expectedSeconds  int
	}{
		{
			name:             "filename and seconds",
			body:             `{"filename": "bell.mp3", "seconds": 20}`,
			expectedStatus:   http.StatusOK,
			expectedFilename: strPtr("bell.mp3"),
			expectedSeconds:  20,
		},
		{
			name:             "out of range seconds",
			body:             `{"seconds": 90}`,
			expectedStatus:   http.StatusOK,
			expectedFilename: nil,
			expectedSeconds:  database.DefaultReminderSoundSeconds,
		},
		{
			name:             "unsupported file",
			body:             `{"filename": "bell.exe", "seconds": 20}`,
			expectedStatus:   http.StatusBadRequest,
			expectedFilename: nil,
			expectedSeconds:  database.DefaultReminderSoundSeconds,
		},
		{
			name:             "blank filename",
			body:             `{"filename": "", "seconds": 20}`,
			expectedStatus:   http.StatusOK,
			expectedFilename: nil,
			expectedSeconds:  20,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, server := setupServer(t)
			user := testutils.SetupUserData(a.DB, "alice", "pass1234")

			req := testutils.MakeReq(server.URL, "PATCH", "/api/settings/reminder", tc.body)
			res := testutils.HTTPAuthDo(t, a.DB, req, user)

			assert.StatusCodeEquals(t, res, tc.expectedStatus, "")

			var u database.User
			testutils.MustExec(t, a.DB.Where("id = ?", user.ID).First(&u), "finding user")
			assert.DeepEqual(t, u.ReminderSoundFilename, tc.expectedFilename, "filename mismatch")
			assert.Equal(t, u.ReminderSoundSeconds, tc.expectedSeconds, "seconds mismatch")
		})
	}
}

func strPtr(s string) *string {
	return &s
}
