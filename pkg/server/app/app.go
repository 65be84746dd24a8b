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

package app

import (
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/clock"
	"gorm.io/gorm"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptySessionTTL is an error for a missing login session lifetime
	ErrEmptySessionTTL = errors.New("No session TTL was provided")
)

// App is an application context
type App struct {
	DB                  *gorm.DB
	Clock               clock.Clock
	Location            *time.Location
	SessionTTL          time.Duration
	DisableRegistration bool
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.SessionTTL <= 0 {
		return ErrEmptySessionTTL
	}

	return nil
}

// now returns the current time in UTC, which is how every timestamp is stored
func (a *App) now() time.Time {
	return a.Clock.Now().UTC()
}

// location returns the location in which calendar dates are compared
func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}

	return a.Location
}
