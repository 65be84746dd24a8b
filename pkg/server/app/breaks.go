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
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/schedule"
	"gorm.io/gorm"
)

// BreakDurations are the break lengths, in minutes, a user may choose from
var BreakDurations = []int{15, 20, 25, 30, 45, 60, 90}

// ReminderSoundExtensions are the accepted reminder sound file types
var ReminderSoundExtensions = []string{".mp3", ".wav", ".ogg", ".aac"}

const (
	reminderSecondsMin = 1
	reminderSecondsMax = 60
)

func isBreakDuration(minutes int) bool {
	for _, d := range BreakDurations {
		if d == minutes {
			return true
		}
	}

	return false
}

func isReminderSound(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range ReminderSoundExtensions {
		if e == ext {
			return true
		}
	}

	return false
}

// SetBreakDuration sets the length of the breaks the user takes
func (a *App) SetBreakDuration(userID, minutes int) error {
	if !isBreakDuration(minutes) {
		return ErrInvalidBreakDuration
	}

	res := a.DB.Model(&database.User{}).Where("id = ?", userID).Update("break_duration_minutes", minutes)
	if err := res.Error; err != nil {
		return errors.Wrap(err, "updating break duration")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ToggleBreak starts a break lasting the user's break duration, or ends the
// running one
func (a *App) ToggleBreak(userID int, on bool) (schedule.BreakState, error) {
	tx := a.DB.Begin()

	user, err := getUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return schedule.BreakState{}, err
	}

	now := a.now()

	var until *time.Time
	if on {
		minutes := user.BreakDurationMinutes
		if minutes <= 0 {
			minutes = database.DefaultBreakDurationMinutes
		}

		t := now.Add(time.Duration(minutes) * time.Minute)
		until = &t
	}

	if err := tx.Model(&database.User{}).Where("id = ?", userID).Update("lunch_break_until", until).Error; err != nil {
		tx.Rollback()
		return schedule.BreakState{}, errors.Wrap(err, "updating break")
	}

	if err := tx.Commit().Error; err != nil {
		return schedule.BreakState{}, errors.Wrap(err, "committing transaction")
	}

	return schedule.Break(now, until), nil
}

// clearExpiredBreak removes a break end time that has already passed. It is
// a no-op for running or absent breaks.
func clearExpiredBreak(db *gorm.DB, user *database.User, now time.Time) error {
	if user.LunchBreakUntil == nil || schedule.BreakActive(now, user.LunchBreakUntil) {
		return nil
	}

	if err := db.Model(&database.User{}).Where("id = ?", user.ID).Update("lunch_break_until", nil).Error; err != nil {
		return errors.Wrap(err, "clearing expired break")
	}
	user.LunchBreakUntil = nil

	return nil
}

// GetBreakState returns the break state of the user, clearing a break that
// has run out
func (a *App) GetBreakState(userID int) (schedule.BreakState, error) {
	user, err := getUser(a.DB, userID)
	if err != nil {
		return schedule.BreakState{}, err
	}

	now := a.now()
	if err := clearExpiredBreak(a.DB, &user, now); err != nil {
		return schedule.BreakState{}, err
	}

	return schedule.Break(now, user.LunchBreakUntil), nil
}

// SetReminderSound sets the reminder sound settings of the user. A nil or
// blank filename keeps the current file. Seconds outside 1..60 fall back to the
// default.
func (a *App) SetReminderSound(userID int, filename *string, seconds int) (database.User, error) {
	if seconds < reminderSecondsMin || seconds > reminderSecondsMax {
		seconds = database.DefaultReminderSoundSeconds
	}

	updates := map[string]interface{}{
		"reminder_sound_seconds": seconds,
	}
	if filename != nil && strings.TrimSpace(*filename) != "" {
		name := strings.TrimSpace(*filename)
		if !isReminderSound(name) {
			return database.User{}, ErrInvalidReminderSound
		}

		updates["reminder_sound_filename"] = name
	}

	tx := a.DB.Begin()

	user, err := getUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return database.User{}, err
	}

	if err := tx.Model(&user).Updates(updates).Error; err != nil {
		tx.Rollback()
		return database.User{}, errors.Wrap(err, "updating reminder sound")
	}

	user, err = getUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return database.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		return database.User{}, errors.Wrap(err, "committing transaction")
	}

	return user, nil
}
