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
	"github.com/studytrack/studytrack/pkg/server/context"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
	mw "github.com/studytrack/studytrack/pkg/server/middleware"
	"github.com/studytrack/studytrack/pkg/server/presenters"
)

// NewUsers creates a new Users controller.
func NewUsers(app *app.App) *Users {
	return &Users{
		app: app,
	}
}

// Users is a user controller.
type Users struct {
	app *app.App
}

// AuthResponse is the payload for a successful registration or sign in
type AuthResponse struct {
	User    presenters.User    `json:"user"`
	Session presenters.Session `json:"session"`
}

func respondWithSession(w http.ResponseWriter, statusCode int, user database.User, session database.Session) {
	setSessionCookie(w, session.Key, session.ExpiresAt)

	respondJSON(w, statusCode, AuthResponse{
		User:    presenters.PresentUser(user),
		Session: presenters.PresentSession(session),
	})
}

// RegistrationForm is the form data for registering
type RegistrationForm struct {
	Username             string `schema:"username" json:"username"`
	Email                string `schema:"email" json:"email"`
	FirstName            string `schema:"first_name" json:"first_name"`
	LastName             string `schema:"last_name" json:"last_name"`
	Password             string `schema:"password" json:"password"`
	PasswordConfirmation string `schema:"password_confirmation" json:"password_confirmation"`
}

// Create handles register
func (u *Users) Create(w http.ResponseWriter, r *http.Request) {
	var form RegistrationForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if form.PasswordConfirmation != "" && form.Password != form.PasswordConfirmation {
		handleJSONError(w, app.ErrPasswordConfirmationMismatch, "password mismatch")
		return
	}

	user, err := u.app.Register(form.Username, form.Email, form.FirstName, form.LastName, form.Password)
	if err != nil {
		handleJSONError(w, err, "registering user")
		return
	}

	session, err := u.app.SignIn(user)
	if err != nil {
		handleJSONError(w, err, "signing in a user")
		return
	}

	respondWithSession(w, http.StatusCreated, user, session)
}

// LoginForm is the form data for log in
type LoginForm struct {
	Username string `schema:"username" json:"username"`
	Password string `schema:"password" json:"password"`
}

// Login handles login
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	var form LoginForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	user, err := u.app.Authenticate(form.Username, form.Password)
	if err != nil {
		if app.KindOf(err) == app.KindAuth {
			log.WithFields(log.Fields{
				"username":  form.Username,
				"requestID": context.RequestID(r.Context()),
			}).Warn("invalid login attempt")
		}

		handleJSONError(w, err, "logging in user")
		return
	}

	session, err := u.app.SignIn(user)
	if err != nil {
		handleJSONError(w, err, "signing in a user")
		return
	}

	respondWithSession(w, http.StatusOK, user, session)
}

// Logout handles logout. It succeeds even without a valid session.
func (u *Users) Logout(w http.ResponseWriter, r *http.Request) {
	key, err := mw.GetCredential(r)
	if err != nil {
		handleJSONError(w, app.ErrLoginRequired, "getting credentials")
		return
	}

	if key != "" {
		if err := u.app.DeleteSession(key); err != nil {
			handleJSONError(w, err, "deleting session")
			return
		}

		unsetSessionCookie(w)
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed in user
func (u *Users) Me(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(user))
}

type updatePasswordForm struct {
	OldPassword             string `schema:"old_password" json:"old_password"`
	NewPassword             string `schema:"new_password" json:"new_password"`
	NewPasswordConfirmation string `schema:"new_password_confirmation" json:"new_password_confirmation"`
}

// PasswordUpdate changes the password of the signed in user
func (u *Users) PasswordUpdate(w http.ResponseWriter, r *http.Request) {
	user, err := getUser(r)
	if err != nil {
		handleJSONError(w, err, "getting user")
		return
	}

	var form updatePasswordForm
	if err := parseRequestData(r, &form); err != nil {
		handleJSONError(w, err, "parsing payload")
		return
	}

	if form.NewPassword != form.NewPasswordConfirmation {
		handleJSONError(w, app.ErrPasswordConfirmationMismatch, "passwords do not match")
		return
	}

	var currentKey string
	if session := context.Session(r.Context()); session != nil {
		currentKey = session.Key
	}

	if err := u.app.UpdatePassword(user.ID, form.OldPassword, form.NewPassword, currentKey); err != nil {
		if err == app.ErrInvalidPassword {
			log.WithFields(log.Fields{
				"user_id":   user.ID,
				"requestID": context.RequestID(r.Context()),
			}).Warn("invalid password update attempt")
		}

		handleJSONError(w, err, "updating password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
