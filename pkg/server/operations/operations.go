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

// Package operations loads entities together with their ownership chain. A
// record owned by someone else is reported the same way as a missing one.
package operations

import (
	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/permissions"
	"gorm.io/gorm"
)

// GetSubject retrieves a subject for the given user
func GetSubject(db *gorm.DB, userID, subjectID int) (database.Subject, bool, error) {
	var subject database.Subject
	err := db.Where("id = ?", subjectID).First(&subject).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Subject{}, false, nil
	} else if err != nil {
		return database.Subject{}, false, errors.Wrap(err, "finding subject")
	}

	if ok := permissions.ViewSubject(userID, subject); !ok {
		return database.Subject{}, false, nil
	}

	return subject, true, nil
}

// GetTopic retrieves a topic and its parent subject for the given user
func GetTopic(db *gorm.DB, userID, topicID int) (database.Topic, database.Subject, bool, error) {
	var topic database.Topic
	err := db.Where("id = ?", topicID).First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Topic{}, database.Subject{}, false, nil
	} else if err != nil {
		return database.Topic{}, database.Subject{}, false, errors.Wrap(err, "finding topic")
	}

	subject, ok, err := GetSubject(db, userID, topic.SubjectID)
	if err != nil {
		return database.Topic{}, database.Subject{}, false, err
	}
	if !ok || !permissions.ViewTopic(userID, topic, subject) {
		return database.Topic{}, database.Subject{}, false, nil
	}

	return topic, subject, true, nil
}

// GetStudySession retrieves a study session for the given user
func GetStudySession(db *gorm.DB, userID, sessionID int) (database.StudySession, bool, error) {
	var session database.StudySession
	err := db.Where("id = ?", sessionID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.StudySession{}, false, nil
	} else if err != nil {
		return database.StudySession{}, false, errors.Wrap(err, "finding study session")
	}

	if ok := permissions.ViewStudySession(userID, session); !ok {
		return database.StudySession{}, false, nil
	}

	return session, true, nil
}

// GetExam retrieves an exam for the given user
func GetExam(db *gorm.DB, userID, examID int) (database.ExamMode, bool, error) {
	var exam database.ExamMode
	err := db.Where("id = ?", examID).First(&exam).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.ExamMode{}, false, nil
	} else if err != nil {
		return database.ExamMode{}, false, errors.Wrap(err, "finding exam")
	}

	if ok := permissions.ViewExam(userID, exam); !ok {
		return database.ExamMode{}, false, nil
	}

	return exam, true, nil
}
