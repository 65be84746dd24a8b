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

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/app"
	mw "github.com/studytrack/studytrack/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	APIRoutes   []Route
	CORSOrigins []string
}

// NewAPIRoutes returns a new api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	ret := []Route{
		{"POST", "/signin", mw.LimitCredentials(c.Users.Login), true},
		{"POST", "/signout", c.Users.Logout, true},
		{"GET", "/me", mw.Auth(a, c.Users.Me), true},
		{"PATCH", "/me/password", mw.LimitCredentials(mw.Auth(a, c.Users.PasswordUpdate)), true},

		{"PATCH", "/settings/break", mw.Auth(a, c.Breaks.UpdateDuration), true},
		{"PATCH", "/settings/reminder", mw.Auth(a, c.Breaks.UpdateReminder), true},
		{"GET", "/break", mw.Auth(a, c.Breaks.Show), true},
		{"POST", "/break", mw.Auth(a, c.Breaks.Toggle), true},

		{"GET", "/dashboard", mw.Auth(a, c.Dashboard.Index), true},

		{"GET", "/subjects", mw.Auth(a, c.Subjects.Index), true},
		{"POST", "/subjects", mw.Auth(a, c.Subjects.Create), true},
		{"GET", "/subjects/{subjectID}", mw.Auth(a, c.Subjects.Show), true},
		{"PATCH", "/subjects/{subjectID}", mw.Auth(a, c.Subjects.Update), true},
		{"DELETE", "/subjects/{subjectID}", mw.Auth(a, c.Subjects.Delete), true},
		{"POST", "/subjects/{subjectID}/complete", mw.Auth(a, c.Subjects.Complete), true},

		{"POST", "/subjects/{subjectID}/topics", mw.Auth(a, c.Topics.Create), true},
		{"PATCH", "/topics/{topicID}", mw.Auth(a, c.Topics.Update), true},
		{"DELETE", "/topics/{topicID}", mw.Auth(a, c.Topics.Delete), true},

		{"POST", "/subjects/{subjectID}/sessions", mw.Auth(a, c.StudySessions.Create), true},
		{"PATCH", "/sessions/{sessionID}/stop", mw.Auth(a, c.StudySessions.Stop), true},
		{"GET", "/sessions", mw.Auth(a, c.StudySessions.Index), true},

		{"POST", "/subjects/{subjectID}/exams", mw.Auth(a, c.Exams.Create), true},
		{"GET", "/exams", mw.Auth(a, c.Exams.Index), true},
		{"DELETE", "/exams/{examID}", mw.Auth(a, c.Exams.Delete), true},
	}

	if !a.DisableRegistration {
		ret = append(ret, Route{"POST", "/register", mw.LimitCredentials(c.Users.Create), true})
	}

	return ret
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	handleJSONError(w, app.ErrNotFound, "no route")
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	apiRouter := router.PathPrefix("/api").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)

	router.Handle("/health", mw.ApplyLimit(rc.Controllers.Health.Index, false)).Methods("GET")

	// catch-all
	router.NotFoundHandler = http.HandlerFunc(notFound)

	origins := rc.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return mw.Global(mw.CORS(origins)(router)), nil
}
