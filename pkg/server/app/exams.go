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
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/operations"
)

// CreateExam schedules an exam on a subject of the user
func (a *App) CreateExam(userID, subjectID int, examDate time.Time) (database.ExamMode, error) {
	if examDate.IsZero() {
		return database.ExamMode{}, ErrExamDateRequired
	}

	tx := a.DB.Begin()

	subject, err := getOwnedSubject(tx, userID, subjectID)
	if err != nil {
		tx.Rollback()
		return database.ExamMode{}, err
	}

	exam := database.ExamMode{
		UserID:    userID,
		SubjectID: subject.ID,
		ExamDate:  examDate.UTC(),
		IsActive:  true,
	}
	if err := tx.Create(&exam).Error; err != nil {
		tx.Rollback()
		return database.ExamMode{}, errors.Wrap(err, "inserting exam")
	}

	if err := tx.Commit().Error; err != nil {
		return database.ExamMode{}, errors.Wrap(err, "committing transaction")
	}

	return exam, nil
}

// ListExams returns the active exams of the user, soonest first
func (a *App) ListExams(userID int) ([]database.ExamMode, error) {
	exams := []database.ExamMode{}
	if err := a.DB.Where("user_id = ? AND is_active = ?", userID, true).Order("exam_date ASC, id ASC").Find(&exams).Error; err != nil {
		return nil, errors.Wrap(err, "finding exams")
	}

	return exams, nil
}

// DeleteExam deletes an exam of the user
func (a *App) DeleteExam(userID, examID int) error {
	exam, ok, err := operations.GetExam(a.DB, userID, examID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}

	if err := a.DB.Delete(&exam).Error; err != nil {
		return errors.Wrap(err, "deleting exam")
	}

	return nil
}
