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
	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
	"github.com/studytrack/studytrack/pkg/server/token"
	"gorm.io/gorm"
)

// sessionPurgeSchedule is how often expired login sessions are removed
const sessionPurgeSchedule = "@hourly"

// CreateSession signs in the user of the given id, returning a session that
// lives for the app's SessionTTL
func (a *App) CreateSession(userID int) (database.Session, error) {
	session, err := token.Create(a.DB, userID, a.now(), a.SessionTTL)
	if err != nil {
		return database.Session{}, errors.Wrap(err, "creating session")
	}

	return session, nil
}

// DeleteUserSessions signs the user out everywhere
func (a *App) DeleteUserSessions(db *gorm.DB, userID int) error {
	if err := db.Where("user_id = ?", userID).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting sessions")
	}

	return nil
}

// DeleteOtherSessions signs the user out everywhere except the session with
// the given key
func (a *App) DeleteOtherSessions(db *gorm.DB, userID int, keepKey string) error {
	if err := db.Where("user_id = ? AND key <> ?", userID, keepKey).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting other sessions")
	}

	return nil
}

// DeleteSession signs out the session with the given key. An unknown key is
// not an error.
func (a *App) DeleteSession(sessionKey string) error {
	if err := a.DB.Where("key = ?", sessionKey).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting the session")
	}

	return nil
}

// PurgeExpiredSessions removes the sessions that expired at or before the
// current time and returns how many were removed
func (a *App) PurgeExpiredSessions(db *gorm.DB) (int64, error) {
	result := db.Where("expires_at <= ?", a.now()).Delete(&database.Session{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "purging expired sessions")
	}

	return result.RowsAffected, nil
}

// MaintenanceJobs returns the periodic jobs the app needs run against its
// database
func (a *App) MaintenanceJobs() []database.Job {
	return []database.Job{
		{
			Name:     "purge_sessions",
			Schedule: sessionPurgeSchedule,
			Run: func(db *gorm.DB) error {
				count, err := a.PurgeExpiredSessions(db)
				if err != nil {
					return err
				}

				log.WithFields(log.Fields{
					"count": count,
				}).Debug("purged expired sessions")

				return nil
			},
		},
	}
}
