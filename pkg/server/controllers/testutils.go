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
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/app"
)

// MustNewServer starts a test server for the given app, allowing cross
// origin requests from corsOrigins, and closes it when the test ends
func MustNewServer(t *testing.T, a *app.App, corsOrigins ...string) *httptest.Server {
	server, err := NewServer(a, corsOrigins...)
	if err != nil {
		t.Fatal(errors.Wrap(err, "initializing router"))
	}

	t.Cleanup(server.Close)

	return server
}

// NewServer returns a test server serving every API route of the given app
func NewServer(a *app.App, corsOrigins ...string) (*httptest.Server, error) {
	ctl := New(a)
	r, err := NewRouter(a, RouteConfig{
		Controllers: ctl,
		APIRoutes:   NewAPIRoutes(a, ctl),
		CORSOrigins: corsOrigins,
	})
	if err != nil {
		return nil, errors.Wrap(err, "initializing router")
	}

	return httptest.NewServer(r), nil
}
