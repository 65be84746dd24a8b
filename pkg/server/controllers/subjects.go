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

// NewSubjects creates a new Subjects controller
func NewSubjects(app *app.App) *Subjects {
	return &Subjects{
		app: app,
	}
}

// Subjects is a controller for subjects
type Subjects struct {
	app *app.App
}

// Index returns the active subjects of the signed in user
func (s *Subjects) Index(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	subjects, err := s.app.ListSubjects(user.ID)
	if err != nil {
		handleJSONError(w, err, "listing subjects")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSubjects(subjects))
}

// Show returns a subject
func (s *Subjects) Show(w http.ResponseWriter, r *http.Request) {
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

	subject, err := s.app.GetSubject(user.ID, subjectID)
	if err != nil {
		handleJSONError(w, err, "getting subject")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSubject(subject))
}

// createSubjectPayload takes the window either as 24-hour hours or as
// 12-hour hours with an AM/PM suffix
type createSubjectPayload struct {
	Name             string       `schema:"name" json:"name"`
	Description      string       `schema:"description" json:"description"`
	Color            string       `schema:"color" json:"color"`
	DailyTimeMinutes schedule.Int `schema:"daily_time_minutes" json:"daily_time_minutes"`
	StartHour        schedule.Int `schema:"start_hour" json:"start_hour"`
	StartMinute      schedule.Int `schema:"start_minute" json:"start_minute"`
	EndHour          schedule.Int `schema:"end_hour" json:"end_hour"`
	EndMinute        schedule.Int `schema:"end_minute" json:"end_minute"`
	StartHour12      schedule.Int `schema:"start_hour_12" json:"start_hour_12"`
	StartAMPM        string       `schema:"start_ampm" json:"start_ampm"`
	EndHour12        schedule.Int `schema:"end_hour_12" json:"end_hour_12"`
	EndAMPM          string       `schema:"end_ampm" json:"end_ampm"`
}

func (p createSubjectPayload) toParams() app.SubjectParams {
	return app.SubjectParams{
		Name:             p.Name,
		Description:      p.Description,
		Color:            p.Color,
		DailyTimeMinutes: p.DailyTimeMinutes,
		Window: schedule.WindowInput{
			StartHour:   p.StartHour,
			StartMinute: p.StartMinute,
			EndHour:     p.EndHour,
			EndMinute:   p.EndMinute,
			StartHour12: p.StartHour12,
			StartAMPM:   p.StartAMPM,
			EndHour12:   p.EndHour12,
			EndAMPM:     p.EndAMPM,
		},
	}
}

// Create creates a subject
func (s *Subjects) Create(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	var params createSubjectPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	subject, err := s.app.CreateSubject(user.ID, params.toParams())
	if err != nil {
		handleJSONError(w, err, "creating subject")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentSubject(subject))
}

type updateSubjectPayload struct {
	Name string `schema:"name" json:"name"`
}

// Update renames a subject
func (s *Subjects) Update(w http.ResponseWriter, r *http.Request) {
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

	var params updateSubjectPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if _, err := s.app.RenameSubject(user.ID, subjectID, params.Name); err != nil {
		handleJSONError(w, err, "renaming subject")
		return
	}

	subject, err := s.app.GetSubject(user.ID, subjectID)
	if err != nil {
		handleJSONError(w, err, "getting subject")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentSubject(subject))
}

// Delete deletes a subject with everything recorded against it
func (s *Subjects) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := s.app.DeleteSubject(user.ID, subjectID); err != nil {
		handleJSONError(w, err, "deleting subject")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Complete marks a subject as finished now
func (s *Subjects) Complete(w http.ResponseWriter, r *http.Request) {
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

	result, err := s.app.CompleteSubject(user.ID, subjectID)
	if err != nil {
		handleJSONError(w, err, "completing subject")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCompletion(result))
}
