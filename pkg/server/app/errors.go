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
	"github.com/pkg/errors"
)

// Kind classifies an application error so that callers can map it to a
// response without matching on individual errors
type Kind int

const (
	// KindPersistence is an unexpected failure of the underlying store. Errors
	// that carry no kind are treated as this one.
	KindPersistence Kind = iota
	// KindValidation is malformed or missing input
	KindValidation
	// KindAuth is a missing or wrong credential
	KindAuth
	// KindNotFound is an absent entity or one owned by someone else
	KindNotFound
	// KindBreakActive is an operation blocked by a running break
	KindBreakActive
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindBreakActive:
		return "break_active"
	default:
		return "persistence"
	}
}

type appError struct {
	kind Kind
	msg  string
}

func (e appError) Error() string {
	return e.msg
}

// Kind returns the kind of the error
func (e appError) Kind() Kind {
	return e.kind
}

func newError(kind Kind, msg string) appError {
	return appError{kind: kind, msg: msg}
}

// KindOf returns the kind of the given error, looking through wrapped errors
func KindOf(err error) Kind {
	var e appError
	if errors.As(err, &e) {
		return e.kind
	}

	return KindPersistence
}

// MessageOf returns the client-facing message of the given error. Errors
// without a kind have no safe message and yield an empty string.
func MessageOf(err error) string {
	var e appError
	if errors.As(err, &e) {
		return e.msg
	}

	return ""
}

var (
	// ErrNotFound an error that indicates that the given resource is not found
	ErrNotFound = newError(KindNotFound, "not found")
	// ErrLoginInvalid is an error for invalid login
	ErrLoginInvalid = newError(KindAuth, "wrong login credentials")
	// ErrLoginRequired is an error for not authenticated
	ErrLoginRequired = newError(KindAuth, "login required")
	// ErrInvalidPassword is an error for a wrong current password on password change
	ErrInvalidPassword = newError(KindAuth, "invalid current password")
	// ErrBreakActive is an error for creating a subject during a break
	ErrBreakActive = newError(KindBreakActive, "cannot add subjects during a break")

	// ErrInvalidRequest is an error for a request body that cannot be decoded
	ErrInvalidRequest = newError(KindValidation, "invalid request payload")
	// ErrUsernameLength is an error for a username outside the allowed length
	ErrUsernameLength = newError(KindValidation, "username must be between 4 and 20 characters")
	// ErrEmailInvalid is an error for a malformed email
	ErrEmailInvalid = newError(KindValidation, "invalid email address")
	// ErrPasswordTooShort is an error for short password
	ErrPasswordTooShort = newError(KindValidation, "password should be at least 6 characters long")
	// ErrPasswordConfirmationMismatch is an error for a password confirmation that does not match
	ErrPasswordConfirmationMismatch = newError(KindValidation, "password confirmation does not match")
	// ErrFirstNameRequired is an error for a missing or overlong first name
	ErrFirstNameRequired = newError(KindValidation, "first name is required and must be at most 64 characters")
	// ErrLastNameRequired is an error for a missing or overlong last name
	ErrLastNameRequired = newError(KindValidation, "last name is required and must be at most 64 characters")
	// ErrDuplicateUsername is an error for duplicate username
	ErrDuplicateUsername = newError(KindValidation, "username is already taken")
	// ErrDuplicateEmail is an error for duplicate email
	ErrDuplicateEmail = newError(KindValidation, "email is already registered")
	// ErrDuplicateAccount is an error for a username or email taken by a concurrent registration
	ErrDuplicateAccount = newError(KindValidation, "username or email is already taken")

	// ErrInvalidBreakDuration is an error for a break duration outside the allowed set
	ErrInvalidBreakDuration = newError(KindValidation, "invalid break duration")
	// ErrInvalidReminderSound is an error for a reminder sound file of an unsupported type
	ErrInvalidReminderSound = newError(KindValidation, "reminder sound must be an mp3, wav, ogg or aac file")

	// ErrSubjectNameRequired is an error for a missing subject name
	ErrSubjectNameRequired = newError(KindValidation, "subject name is required")
	// ErrTopicNameRequired is an error for a missing topic name
	ErrTopicNameRequired = newError(KindValidation, "topic name is required")

	// ErrStudySessionClosed is an error for stopping a study session that already ended
	ErrStudySessionClosed = newError(KindValidation, "study session is already closed")
	// ErrInvalidRating is an error for a rating outside 1..5
	ErrInvalidRating = newError(KindValidation, "rating must be between 1 and 5")

	// ErrExamDateRequired is an error for a missing exam date
	ErrExamDateRequired = newError(KindValidation, "exam date is required")
)
