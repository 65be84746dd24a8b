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
	"strings"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/operations"
	"github.com/studytrack/studytrack/pkg/server/schedule"
)

const (
	// DefaultRecentSessionsLimit is the number of recent sessions returned
	// when no limit is given
	DefaultRecentSessionsLimit = 5
	// MaxRecentSessionsLimit caps the number of recent sessions returned
	MaxRecentSessionsLimit = 100
)

// StartStudySession opens a study session on a subject of the user, optionally
// on one of the subject's topics
func (a *App) StartStudySession(userID, subjectID int, topicID *int, notes string) (database.StudySession, error) {
	tx := a.DB.Begin()

	subject, err := getOwnedSubject(tx, userID, subjectID)
	if err != nil {
		tx.Rollback()
		return database.StudySession{}, err
	}

	if topicID != nil {
		topic, err := getOwnedTopic(tx, userID, *topicID)
		if err != nil {
			tx.Rollback()
			return database.StudySession{}, err
		}
		if topic.SubjectID != subject.ID {
			tx.Rollback()
			return database.StudySession{}, ErrNotFound
		}
	}

	session := database.StudySession{
		UserID:    userID,
		SubjectID: subject.ID,
		TopicID:   topicID,
		StartTime: a.now(),
		Notes:     strings.TrimSpace(notes),
	}
	if err := tx.Create(&session).Error; err != nil {
		tx.Rollback()
		return database.StudySession{}, errors.Wrap(err, "inserting study session")
	}

	if err := tx.Commit().Error; err != nil {
		return database.StudySession{}, errors.Wrap(err, "committing transaction")
	}

	return session, nil
}

// StopStudySession closes an open study session of the user. The given notes
// are appended to the existing ones.
func (a *App) StopStudySession(userID, sessionID int, rating *int, notes string) (database.StudySession, error) {
	tx := a.DB.Begin()

	session, ok, err := operations.GetStudySession(tx, userID, sessionID)
	if err != nil {
		tx.Rollback()
		return database.StudySession{}, err
	}
	if !ok {
		tx.Rollback()
		return database.StudySession{}, ErrNotFound
	}

	if session.EndTime != nil {
		tx.Rollback()
		return database.StudySession{}, ErrStudySessionClosed
	}
	if rating != nil && (*rating < 1 || *rating > 5) {
		tx.Rollback()
		return database.StudySession{}, ErrInvalidRating
	}

	now := a.now()
	duration := schedule.ElapsedMinutes(session.StartTime, now)

	notes = strings.TrimSpace(notes)
	if notes != "" {
		if session.Notes != "" {
			notes = session.Notes + "\n" + notes
		}
	} else {
		notes = session.Notes
	}

	if err := tx.Model(&session).Updates(map[string]interface{}{
		"end_time":                now,
		"actual_duration_minutes": duration,
		"rating":                  rating,
		"notes":                   notes,
	}).Error; err != nil {
		tx.Rollback()
		return database.StudySession{}, errors.Wrap(err, "closing study session")
	}

	if err := tx.Commit().Error; err != nil {
		return database.StudySession{}, errors.Wrap(err, "committing transaction")
	}

	session.EndTime = &now
	session.ActualDurationMinutes = &duration
	session.Rating = rating
	session.Notes = notes

	return session, nil
}

// RecentSessions returns the latest study sessions of the user, newest first.
// A non-positive limit uses the default and large limits are capped.
func (a *App) RecentSessions(userID, limit int) ([]database.StudySession, error) {
	if limit <= 0 {
		limit = DefaultRecentSessionsLimit
	}
	if limit > MaxRecentSessionsLimit {
		limit = MaxRecentSessionsLimit
	}

	sessions := []database.StudySession{}
	if err := a.DB.Where("user_id = ?", userID).Order("start_time DESC, id DESC").Limit(limit).Find(&sessions).Error; err != nil {
		return nil, errors.Wrap(err, "finding study sessions")
	}

	return sessions, nil
}
