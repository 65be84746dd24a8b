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
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/operations"
	"github.com/studytrack/studytrack/pkg/server/schedule"
	"gorm.io/gorm"
)

const defaultDailyTimeMinutes = 60

// maxColorLength is the width of the subjects.color column
const maxColorLength = 7

// SubjectParams are the parameters for creating a subject
type SubjectParams struct {
	Name             string
	Description      string
	Color            string
	DailyTimeMinutes schedule.Int
	Window           schedule.WindowInput
}

// CompletionResult describes what finishing a subject did to the ledger.
// ClosedSession is true when an open study session was closed, and false when
// a stamp session was created instead. SessionID names the affected session.
type CompletionResult struct {
	ClosedSession bool
	SessionID     int
	CompletedAt   time.Time
}

// preloadActiveTopics eagerly loads the active topics of subjects in id order
func preloadActiveTopics(db *gorm.DB) *gorm.DB {
	return db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true).Order("id ASC")
	})
}

// getOwnedSubject loads a subject of the user or fails with ErrNotFound
func getOwnedSubject(db *gorm.DB, userID, subjectID int) (database.Subject, error) {
	subject, ok, err := operations.GetSubject(db, userID, subjectID)
	if err != nil {
		return database.Subject{}, err
	}
	if !ok {
		return database.Subject{}, ErrNotFound
	}

	return subject, nil
}

// ListSubjects returns the active subjects of the user with their active topics
func (a *App) ListSubjects(userID int) ([]database.Subject, error) {
	subjects := []database.Subject{}

	q := preloadActiveTopics(a.DB).Where("user_id = ? AND is_active = ?", userID, true).Order("id ASC")
	if err := q.Find(&subjects).Error; err != nil {
		return nil, errors.Wrap(err, "finding subjects")
	}

	return subjects, nil
}

// GetSubject returns a subject of the user with its active topics
func (a *App) GetSubject(userID, subjectID int) (database.Subject, error) {
	if _, err := getOwnedSubject(a.DB, userID, subjectID); err != nil {
		return database.Subject{}, err
	}

	var subject database.Subject
	if err := preloadActiveTopics(a.DB).Where("id = ?", subjectID).First(&subject).Error; err != nil {
		return database.Subject{}, errors.Wrap(err, "loading subject")
	}

	return subject, nil
}

// CreateSubject creates a subject for the user. Subjects cannot be created
// while the user is on a break.
func (a *App) CreateSubject(userID int, p SubjectParams) (database.Subject, error) {
	tx := a.DB.Begin()

	user, err := getUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return database.Subject{}, err
	}

	if schedule.BreakActive(a.now(), user.LunchBreakUntil) {
		tx.Rollback()
		return database.Subject{}, ErrBreakActive
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		tx.Rollback()
		return database.Subject{}, ErrSubjectNameRequired
	}

	// Any color is stored as given. One that does not fit the column
	// falls back to the default like a missing one.
	color := strings.TrimSpace(p.Color)
	if color == "" || utf8.RuneCountInString(color) > maxColorLength {
		color = database.DefaultSubjectColor
	}

	w := schedule.ResolveWindow(p.Window)
	subject := database.Subject{
		UserID:           userID,
		Name:             name,
		Description:      strings.TrimSpace(p.Description),
		Color:            color,
		DailyTimeMinutes: p.DailyTimeMinutes.Or(defaultDailyTimeMinutes),
		StartHour:        w.StartHour,
		StartMinute:      w.StartMinute,
		EndHour:          w.EndHour,
		EndMinute:        w.EndMinute,
		IsActive:         true,
		Topics:           []database.Topic{},
	}
	if err := tx.Create(&subject).Error; err != nil {
		tx.Rollback()
		return database.Subject{}, errors.Wrap(err, "inserting subject")
	}

	if err := tx.Commit().Error; err != nil {
		return database.Subject{}, errors.Wrap(err, "committing transaction")
	}

	return subject, nil
}

// RenameSubject renames a subject of the user. A blank name leaves the
// subject unchanged.
func (a *App) RenameSubject(userID, subjectID int, name string) (database.Subject, error) {
	tx := a.DB.Begin()

	subject, err := getOwnedSubject(tx, userID, subjectID)
	if err != nil {
		tx.Rollback()
		return database.Subject{}, err
	}

	name = strings.TrimSpace(name)
	if name != "" && name != subject.Name {
		if err := tx.Model(&subject).Update("name", name).Error; err != nil {
			tx.Rollback()
			return database.Subject{}, errors.Wrap(err, "renaming subject")
		}
		subject.Name = name
	}

	if err := tx.Commit().Error; err != nil {
		return database.Subject{}, errors.Wrap(err, "committing transaction")
	}

	return subject, nil
}

// DeleteSubject deletes a subject of the user along with its study sessions,
// exams and topics. Either everything is removed or nothing is.
func (a *App) DeleteSubject(userID, subjectID int) error {
	tx := a.DB.Begin()

	subject, err := getOwnedSubject(tx, userID, subjectID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("subject_id = ?", subject.ID).Delete(&database.StudySession{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting study sessions")
	}
	if err := tx.Where("subject_id = ?", subject.ID).Delete(&database.ExamMode{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting exams")
	}
	if err := tx.Where("subject_id = ?", subject.ID).Delete(&database.Topic{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting topics")
	}
	if err := tx.Delete(&subject).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting subject")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// CompleteSubject marks a subject of the user as finished now. The most
// recently started open study session of the subject is closed. If there is
// none, a zero-length stamp session records the completion.
func (a *App) CompleteSubject(userID, subjectID int) (CompletionResult, error) {
	tx := a.DB.Begin()

	subject, err := getOwnedSubject(tx, userID, subjectID)
	if err != nil {
		tx.Rollback()
		return CompletionResult{}, err
	}

	now := a.now()

	if err := tx.Model(&subject).Update("finished_at", now).Error; err != nil {
		tx.Rollback()
		return CompletionResult{}, errors.Wrap(err, "setting finished_at")
	}

	var open database.StudySession
	err = tx.Where("user_id = ? AND subject_id = ? AND end_time IS NULL", userID, subject.ID).
		Order("start_time DESC, id DESC").First(&open).Error

	result := CompletionResult{CompletedAt: now}

	switch {
	case err == nil:
		duration := schedule.ElapsedMinutes(open.StartTime, now)
		if err := tx.Model(&open).Updates(map[string]interface{}{
			"end_time":                now,
			"actual_duration_minutes": duration,
			"notes":                   open.Notes + database.NoteFinishedSuffix,
		}).Error; err != nil {
			tx.Rollback()
			return CompletionResult{}, errors.Wrap(err, "closing open study session")
		}

		result.ClosedSession = true
		result.SessionID = open.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		zero := 0
		stamp := database.StudySession{
			UserID:                userID,
			SubjectID:             subject.ID,
			StartTime:             now,
			EndTime:               &now,
			ActualDurationMinutes: &zero,
			Notes:                 database.NoteSubjectFinished,
		}
		if err := tx.Create(&stamp).Error; err != nil {
			tx.Rollback()
			return CompletionResult{}, errors.Wrap(err, "inserting completion stamp")
		}

		result.SessionID = stamp.ID
	default:
		tx.Rollback()
		return CompletionResult{}, errors.Wrap(err, "finding open study session")
	}

	if err := tx.Commit().Error; err != nil {
		return CompletionResult{}, errors.Wrap(err, "committing transaction")
	}

	return result, nil
}
