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
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/context"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
	mw "github.com/studytrack/studytrack/pkg/server/middleware"
)

const sessionCookieName = "id"

var formDecoder = newFormDecoder()

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}

// parseRequestData decodes the request body into v. Bodies are JSON unless the
// content type says they are urlencoded forms.
func parseRequestData(r *http.Request, v interface{}) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return errors.Wrap(app.ErrInvalidRequest, err.Error())
		}
		if err := formDecoder.Decode(v, r.PostForm); err != nil {
			return errors.Wrap(app.ErrInvalidRequest, err.Error())
		}
	default:
		err := json.NewDecoder(r.Body).Decode(v)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(app.ErrInvalidRequest, err.Error())
		}
	}

	return nil
}

// statusOf maps the kind of an application error to an HTTP status code
func statusOf(kind app.Kind) int {
	switch kind {
	case app.KindValidation:
		return http.StatusBadRequest
	case app.KindAuth:
		return http.StatusUnauthorized
	case app.KindNotFound:
		return http.StatusNotFound
	case app.KindBreakActive:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

// handleJSONError responds with the status code and the message for the
// given error. Errors of no known kind are logged and hidden from the client.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	kind := app.KindOf(err)
	statusCode := statusOf(kind)

	if kind == app.KindPersistence {
		mw.DoError(w, msg, err, statusCode)
		return
	}

	log.WithFields(log.Fields{
		"kind": kind.String(),
	}).Debug(errors.Wrap(err, msg).Error())

	mw.RespondError(w, statusCode, kind.String(), app.MessageOf(err))
}

// respondJSON encodes the payload as the JSON response body
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

func setSessionCookie(w http.ResponseWriter, key string, expires time.Time) {
	cookie := http.Cookie{
		Name:     sessionCookieName,
		Value:    key,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(w, &cookie)
}

func unsetSessionCookie(w http.ResponseWriter) {
	cookie := http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(w, &cookie)
}

// getUser returns the user put in the context by the authentication middleware
func getUser(r *http.Request) (database.User, error) {
	user := context.User(r.Context())
	if user == nil {
		return database.User{}, app.ErrLoginRequired
	}

	return *user, nil
}

// getIDVar reads a numeric route variable. A malformed id cannot name any
// record, so it reads as not found.
func getIDVar(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, app.ErrNotFound
	}

	return id, nil
}

// location returns the location in which dates without a zone are read
func location(a *app.App) *time.Location {
	if a.Location == nil {
		return time.Local
	}

	return a.Location
}
