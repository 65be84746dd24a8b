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
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/presenters"
)

// NewExams creates a new Exams controller
func NewExams(app *app.App) *Exams {
	return &Exams{
		app: app,
	}
}

// Exams is a controller for exams
type Exams struct {
	app *app.App
}

// parseExamDate reads an RFC 3339 timestamp or a calendar date. A calendar
// date is midnight in the given location. An empty value is the zero time.
func parseExamDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(app.ErrInvalidRequest, "exam date '%s'", s)
	}

	return t, nil
}

type createExamPayload struct {
	ExamDate string `schema:"exam_date" json:"exam_date"`
}

// Create schedules an exam on a subject
func (e *Exams) Create(w http.ResponseWriter, r *http.Request) {
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

	var params createExamPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	examDate, err := parseExamDate(params.ExamDate, location(e.app))
	if err != nil {
		handleJSONError(w, err, "parsing exam date")
		return
	}

	exam, err := e.app.CreateExam(user.ID, subjectID, examDate)
	if err != nil {
		handleJSONError(w, err, "creating exam")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentExam(exam))
}

// Index returns the active exams of the signed in user, soonest first
func (e *Exams) Index(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	exams, err := e.app.ListExams(user.ID)
	if err != nil {
		handleJSONError(w, err, "listing exams")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentExams(exams))
}

// Delete deletes an exam
func (e *Exams) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	examID, err := getIDVar(r, "examID")
	if err != nil {
		handleJSONError(w, err, "reading exam id")
		return
	}

	if err := e.app.DeleteExam(user.ID, examID); err != nil {
		handleJSONError(w, err, "deleting exam")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
