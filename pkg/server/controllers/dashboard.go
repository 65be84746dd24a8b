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

// NewDashboard creates a new Dashboard controller
func NewDashboard(app *app.App) *Dashboard {
	return &Dashboard{
		app: app,
	}
}

// Dashboard is a controller for the overview of the day
type Dashboard struct {
	app *app.App
}

// Index returns the figures, break state, subjects, recent study sessions and
// upcoming exams of the signed in user
func (d *Dashboard) Index(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	breakState, err := d.app.GetBreakState(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting break state")
		return
	}
	stats, err := d.app.DashboardStats(user.ID)
	if err != nil {
		handleJSONError(w, err, "computing stats")
		return
	}
	subjects, err := d.app.ListSubjects(user.ID)
	if err != nil {
		handleJSONError(w, err, "listing subjects")
		return
	}
	sessions, err := d.app.RecentSessions(user.ID, app.DefaultRecentSessionsLimit)
	if err != nil {
		handleJSONError(w, err, "listing study sessions")
		return
	}
	exams, err := d.app.ListExams(user.ID)
	if err != nil {
		handleJSONError(w, err, "listing exams")
		return
	}

	// the context user predates the lazy break clear above
	current, err := d.app.GetUserByID(user.ID)
	if err != nil {
		handleJSONError(w, err, "finding user")
		return
	}

	respondJSON(w, http.StatusOK, presenters.Dashboard{
		User:           presenters.PresentUser(current),
		Stats:          presenters.PresentStats(stats),
		Break:          presenters.PresentBreakState(breakState),
		Subjects:       presenters.PresentSubjects(subjects),
		RecentSessions: presenters.PresentStudySessions(sessions),
		Exams:          presenters.PresentExams(exams),
	})
}
