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

package presenters

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/studytrack/studytrack/pkg/assert"
	"github.com/studytrack/studytrack/pkg/server/database"
)

func TestPresentUser(t *testing.T) {
	sound := "bell.mp3"
	until := time.Date(2025, 5, 1, 12, 30, 0, 0, time.UTC)

	u := database.User{
		Model:                 database.Model{ID: 5, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		Username:              "alice",
		Email:                 "alice@example.com",
		Password:              "$2a$10$hash",
		FirstName:             "Alice",
		LastName:              "Kim",
		BreakDurationMinutes:  45,
		ReminderSoundFilename: &sound,
		ReminderSoundSeconds:  20,
		LunchBreakUntil:       &until,
	}

	got := PresentUser(u)

	assert.Equal(t, got.ID, 5, "ID mismatch")
	assert.Equal(t, got.Username, "alice", "Username mismatch")
	assert.Equal(t, got.Email, "alice@example.com", "Email mismatch")
	assert.Equal(t, got.BreakDurationMinutes, 45, "BreakDurationMinutes mismatch")
	assert.Equal(t, *got.ReminderSoundFilename, "bell.mp3", "ReminderSoundFilename mismatch")
	assert.Equal(t, got.ReminderSoundSeconds, 20, "ReminderSoundSeconds mismatch")
	assert.Equal(t, *got.LunchBreakUntil, until, "LunchBreakUntil mismatch")

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "$2a$10$hash") {
		t.Fatalf("password hash leaked: %s", string(b))
	}
}

func TestPresentSession(t *testing.T) {
	expiresAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	got := PresentSession(database.Session{Key: "abc", ExpiresAt: expiresAt})

	assert.Equal(t, got.Key, "abc", "Key mismatch")
	assert.Equal(t, got.ExpiresAt, expiresAt, "ExpiresAt mismatch")
}
