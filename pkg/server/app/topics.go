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
	"gorm.io/gorm"
)

// getOwnedTopic loads a topic whose subject belongs to the user or fails with
// ErrNotFound
func getOwnedTopic(db *gorm.DB, userID, topicID int) (database.Topic, error) {
	topic, _, ok, err := operations.GetTopic(db, userID, topicID)
	if err != nil {
		return database.Topic{}, err
	}
	if !ok {
		return database.Topic{}, ErrNotFound
	}

	return topic, nil
}

// AddTopic adds a topic to a subject of the user
func (a *App) AddTopic(userID, subjectID int, name string) (database.Topic, error) {
	tx := a.DB.Begin()

	subject, err := getOwnedSubject(tx, userID, subjectID)
	if err != nil {
		tx.Rollback()
		return database.Topic{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		tx.Rollback()
		return database.Topic{}, ErrTopicNameRequired
	}

	topic := database.Topic{
		SubjectID: subject.ID,
		Name:      name,
		IsActive:  true,
	}
	if err := tx.Create(&topic).Error; err != nil {
		tx.Rollback()
		return database.Topic{}, errors.Wrap(err, "inserting topic")
	}

	if err := tx.Commit().Error; err != nil {
		return database.Topic{}, errors.Wrap(err, "committing transaction")
	}

	return topic, nil
}

// RenameTopic renames a topic whose subject belongs to the user
func (a *App) RenameTopic(userID, topicID int, name string) (database.Topic, error) {
	tx := a.DB.Begin()

	topic, err := getOwnedTopic(tx, userID, topicID)
	if err != nil {
		tx.Rollback()
		return database.Topic{}, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		tx.Rollback()
		return database.Topic{}, ErrTopicNameRequired
	}

	if err := tx.Model(&topic).Update("name", name).Error; err != nil {
		tx.Rollback()
		return database.Topic{}, errors.Wrap(err, "renaming topic")
	}
	topic.Name = name

	if err := tx.Commit().Error; err != nil {
		return database.Topic{}, errors.Wrap(err, "committing transaction")
	}

	return topic, nil
}

// DeleteTopic deletes a topic whose subject belongs to the user. Study
// sessions that referenced the topic are kept and lose the reference.
func (a *App) DeleteTopic(userID, topicID int) error {
	tx := a.DB.Begin()

	topic, err := getOwnedTopic(tx, userID, topicID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&database.StudySession{}).Where("topic_id = ?", topic.ID).Update("topic_id", nil).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "detaching study sessions")
	}
	if err := tx.Delete(&topic).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting topic")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}
