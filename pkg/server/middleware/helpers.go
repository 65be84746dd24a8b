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

package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/log"
)

// sessionCookieName is the name of the cookie carrying the session key
const sessionCookieName = "id"

// ErrorDetail is the body of an error response
type ErrorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// RespondError writes a JSON error body with the given status code
func RespondError(w http.ResponseWriter, statusCode int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := ErrorResponse{Error: ErrorDetail{Kind: kind, Message: message}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ErrorWrap(err, "encoding error response")
	}
}

// DoError logs the error and responds with a generic message for the status code.
// The underlying error is never exposed to the client.
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	var message string
	if err == nil {
		message = msg
	} else {
		message = errors.Wrap(err, msg).Error()
	}

	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).Error(message)

	RespondError(w, statusCode, app.KindPersistence.String(), http.StatusText(statusCode))
}

// RespondUnauthorized responds with unauthorized
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Add("WWW-Authenticate", `Bearer realm="Studytrack", charset="UTF-8"`)
	RespondError(w, http.StatusUnauthorized, app.KindAuth.String(), app.ErrLoginRequired.Error())
}

type authHeader struct {
	scheme     string
	credential string
}

func parseAuthHeader(h string) (authHeader, error) {
	parts := strings.Split(h, " ")
	if len(parts) != 2 {
		return authHeader{}, errors.New("Invalid authorization header")
	}

	return authHeader{
		scheme:     parts[0],
		credential: parts[1],
	}, nil
}

// getSessionKeyFromCookie reads and returns a session key from the cookie sent by the
// request. If no session key is found, it returns an empty string
func getSessionKeyFromCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(sessionCookieName)

	if err == http.ErrNoCookie {
		return "", nil
	} else if err != nil {
		return "", errors.Wrap(err, "reading cookie")
	}

	return c.Value, nil
}

// getSessionKeyFromAuth reads and returns a session key from the Authorization header
func getSessionKeyFromAuth(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", nil
	}

	payload, err := parseAuthHeader(h)
	if err != nil {
		return "", errors.Wrap(err, "parsing the authorization header")
	}
	if payload.scheme != "Bearer" {
		return "", errors.Errorf("unsupported authorization scheme '%s'", payload.scheme)
	}

	return payload.credential, nil
}

// GetCredential extracts a session key from the request from the cookie
// or the Authorization header. The cookie takes precedence.
func GetCredential(r *http.Request) (string, error) {
	sessionKey, err := getSessionKeyFromCookie(r)
	if err != nil {
		return "", errors.Wrap(err, "getting session key from cookie")
	}
	if sessionKey == "" {
		sessionKey, err = getSessionKeyFromAuth(r)
		if err != nil {
			return "", errors.Wrap(err, "getting session key from Authorization header")
		}
	}

	return sessionKey, nil
}
