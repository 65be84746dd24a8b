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
	"github.com/studytrack/studytrack/pkg/server/schedule"
)

// NewStudySessions creates a new StudySessions controller
func NewStudySessions(app *app.App) *StudySessions {
	return &StudySessions{
		app: app,
	}
}

// StudySessions is a controller for study sessions
type StudySessions struct {
	app *app.App
}

// intPtr returns a pointer to the value of a valid Int and nil otherwise
func intPtr(i schedule.Int) *int {
	if !i.Valid {
		return nil
	}

	v := i.Value
	return &v
}

type startStudySessionPayload struct {
	TopicID schedule.Int `schema:"topic_id" json:"topic_id"`
	Notes   string       `schema:"notes" json:"notes"`
}

// Create starts a study session on a subject
func (s *StudySessions) Create(w http.ResponseWriter, r *http.Request) {
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

	var params startStudySessionPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	session, err := s.app.StartStudySession(user.ID, subjectID, intPtr(params.TopicID), params.Notes)
	if err != nil {
		handleJSONError(w, err, "starting study session")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentStudySession(session))
}

type stopStudySessionPayload struct {
	Rating schedule.Int `schema:"rating" json:"rating"`
	Notes  string       `schema:"notes" json:"notes"`
}

// Stop closes an open study session
func (s *StudySessions) Stop(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	sessionID, err := getIDVar(r, "sessionID")
	if err != nil {
		handleJSONError(w, err, "reading session id")
		return
	}

	var params stopStudySessionPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	session, err := s.app.StopStudySession(user.ID, sessionID, intPtr(params.Rating), params.Notes)
	if err != nil {
		handleJSONError(w, err, "stopping study session")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentStudySession(session))
}

// Index returns the latest study sessions of the signed in user
func (s *StudySessions) Index(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	var limit schedule.Int
	if err := limit.UnmarshalText([]byte(r.URL.Query().Get("limit"))); err != nil {
		handleJSONError(w, err, "parsing limit")
		return
	}

	sessions, err := s.app.RecentSessions(user.ID, limit.Or(0))
	if err != nil {
		handleJSONError(w, err, "listing study sessions")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentStudySessions(sessions))
}
