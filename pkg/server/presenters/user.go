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
	"time"

	"github.com/studytrack/studytrack/pkg/server/database"
)

// User is a result of PresentUser. It never carries the password hash.
type User struct {
	ID                    int        `json:"id"`
	CreatedAt             time.Time  `json:"created_at"`
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	BreakDurationMinutes  int        `json:"break_duration_minutes"`
	ReminderSoundFilename *string    `json:"reminder_sound_filename"`
	ReminderSoundSeconds  int        `json:"reminder_sound_seconds"`
	LunchBreakUntil       *time.Time `json:"lunch_break_until"`
}

// PresentUser presents a user
func PresentUser(u database.User) User {
	return User{
		ID:                    u.ID,
		CreatedAt:             FormatTS(u.CreatedAt),
		Username:              u.Username,
		Email:                 u.Email,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		BreakDurationMinutes:  u.BreakDurationMinutes,
		ReminderSoundFilename: u.ReminderSoundFilename,
		ReminderSoundSeconds:  u.ReminderSoundSeconds,
		LunchBreakUntil:       formatTSPtr(u.LunchBreakUntil),
	}
}

// Session is a result of PresentSession
type Session struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresentSession presents a login session
func PresentSession(s database.Session) Session {
	return Session{
		Key:       s.Key,
		ExpiresAt: FormatTS(s.ExpiresAt),
	}
}
