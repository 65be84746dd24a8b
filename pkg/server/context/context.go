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

// Package context carries request scoped values of the server
package context

import (
	"context"

	"github.com/studytrack/studytrack/pkg/server/database"
)

const (
	userKey      privateKey = "user"
	sessionKey   privateKey = "session"
	requestIDKey privateKey = "requestID"
)

type privateKey string

// WithUser creates a new context with the given user
func WithUser(ctx context.Context, user *database.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// User retrieves a user from the given context. It returns a pointer to
// a user. If the context does not contain a user, it returns nil.
func User(ctx context.Context) *database.User {
	if temp := ctx.Value(userKey); temp != nil {
		if user, ok := temp.(*database.User); ok {
			return user
		}
	}

	return nil
}

// WithSession creates a new context with the login session the request
// was authenticated with
func WithSession(ctx context.Context, session *database.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// Session retrieves the login session from the given context, or nil
func Session(ctx context.Context) *database.Session {
	session, _ := ctx.Value(sessionKey).(*database.Session)

	return session
}

// WithRequestID creates a new context with the given request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID retrieves the request id from the given context, or an empty string.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}

	return ""
}
