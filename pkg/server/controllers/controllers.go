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
	"github.com/studytrack/studytrack/pkg/server/app"
)

// Controllers is a group of controllers
type Controllers struct {
	Users         *Users
	Breaks        *Breaks
	Subjects      *Subjects
	Topics        *Topics
	StudySessions *StudySessions
	Exams         *Exams
	Dashboard     *Dashboard
	Health        *Health
}

// New returns a new group of controllers
func New(app *app.App) *Controllers {
	c := Controllers{}

	c.Users = NewUsers(app)
	c.Breaks = NewBreaks(app)
	c.Subjects = NewSubjects(app)
	c.Topics = NewTopics(app)
	c.StudySessions = NewStudySessions(app)
	c.Exams = NewExams(app)
	c.Dashboard = NewDashboard(app)
	c.Health = NewHealth(app)

	return &c
}
