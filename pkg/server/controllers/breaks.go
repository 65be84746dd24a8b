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

// NewBreaks creates a new Breaks controller
func NewBreaks(app *app.App) *Breaks {
	return &Breaks{
		app: app,
	}
}

// Breaks is a controller for the break timer and its settings
type Breaks struct {
	app *app.App
}

// Show returns the break state of the signed in user
func (b *Breaks) Show(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	state, err := b.app.GetBreakState(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting break state")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBreakState(state))
}

type toggleBreakPayload struct {
	On bool `schema:"on" json:"on"`
}

// Toggle starts a break when "on" is true and ends it otherwise, including
// when "on" is missing
func (b *Breaks) Toggle(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	var params toggleBreakPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	state, err := b.app.ToggleBreak(user.ID, params.On)
	if err != nil {
		handleJSONError(w, err, "toggling break")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentBreakState(state))
}

type updateBreakDurationPayload struct {
	Minutes schedule.Int `schema:"minutes" json:"minutes"`
}

// UpdateDuration sets the break length of the signed in user
func (b *Breaks) UpdateDuration(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	var params updateBreakDurationPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if err := b.app.SetBreakDuration(user.ID, params.Minutes.Or(0)); err != nil {
		handleJSONError(w, err, "setting break duration")
		return
	}

	updated, err := b.app.GetUserByID(user.ID)
	if err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(updated))
}

type updateReminderPayload struct {
	Filename *string      `schema:"filename" json:"filename"`
	Seconds  schedule.Int `schema:"seconds" json:"seconds"`
}

// UpdateReminder sets the reminder sound of the signed in user
func (b *Breaks) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	var params updateReminderPayload
	if err := parseRequestData(r, &params); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	updated, err := b.app.SetReminderSound(user.ID, params.Filename, params.Seconds.Or(0))
	if err != nil {
		handleJSONError(w, err, "setting reminder sound")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(updated))
}
