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

	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/presenters"
)

// NewTopics creates a new Topics controller
func NewTopics(app *app.App) *Topics {
	return &Topics{
		app: app,
	}
}

// Topics is a controller for topics
type Topics struct {
	app *app.App
}

type topicPayload struct {
	Name string `schema:"name" json:"name"`
}

// Create adds a topic to a subject
func (t *Topics) Create(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	subjectID, err := getIDVar(r, "subjectID")
	if err != nil {
		handleJSONError(w, err, "reading subject id")
		return
	}

	var params topicPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	topic, err := t.app.AddTopic(user.ID, subjectID, params.Name)
	if err != nil {
		handleJSONError(w, err, "adding topic")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentTopic(topic))
}

// Update renames a topic
func (t *Topics) Update(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	topicID, err := getIDVar(r, "topicID")
	if err != nil {
		handleJSONError(w, err, "reading topic id")
		return
	}

	var params topicPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	topic, err := t.app.RenameTopic(user.ID, topicID, params.Name)
	if err != nil {
		handleJSONError(w, err, "renaming topic")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentTopic(topic))
}

// Delete deletes a topic. Study sessions on it are kept without a topic.
func (t *Topics) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	topicID, err := getIDVar(r, "topicID")
	if err != nil {
		handleJSONError(w, err, "reading topic id")
		return
	}

	if err := t.app.DeleteTopic(user.ID, topicID); err != nil {
		handleJSONError(w, err, "deleting topic")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
