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
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/context"
	"github.com/studytrack/studytrack/pkg/server/helpers"
	"github.com/studytrack/studytrack/pkg/server/log"
)

// RequestIDHeader is the header carrying the id of a request
const RequestIDHeader = "X-Request-ID"

// Middleware is a middleware for request handlers
type Middleware func(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler

// APIMw is the middleware for the API routes
func APIMw(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler {
	return ApplyLimit(h, rateLimit)
}

// CORS allows cross-origin requests from the given origins. A "*" entry
// allows any origin, in which case cookies and credentials are not shared.
func CORS(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(origins),
		MaxAge:           600,
	})

	return c.Handler
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}

	return false
}

// statusWriter records the status code written by a handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.ResponseWriter.Write(b)
}

// getRequestID reuses a well-formed id sent by the client and generates one otherwise
func getRequestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); helpers.IsRequestID(id) {
		return id
	}

	id, err := helpers.NewRequestID()
	if err != nil {
		log.ErrorWrap(err, "generating request id")
		return ""
	}

	return id
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := getRequestID(r)
		if id != "" {
			w.Header().Set(RequestIDHeader, id)
		}

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(context.WithRequestID(r.Context(), id)))

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}

		log.WithFields(log.Fields{
			"requestID":  id,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"durationMs": time.Since(start).Milliseconds(),
		}).Info("request")
	})
}

// Global is the middleware for all routes
func Global(h http.Handler) http.Handler {
	return logging(h)
}
