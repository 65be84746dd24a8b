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
	"errors"
	"net/http"
	"time"

	pkgErrors "github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/context"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
	"gorm.io/gorm"
)

// Auth is an authentication middleware. It puts the signed in user in the
// request context or responds with unauthorized.
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, session, ok, err := AuthWithSession(a.DB, r, a.Clock.Now())
		if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			RespondUnauthorized(w)
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		ctx = context.WithSession(ctx, &session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthWithSession finds the user and the unexpired login session the
// request carries. A malformed credential is treated the same as a missing
// one, and ok is false for either.
func AuthWithSession(db *gorm.DB, r *http.Request, now time.Time) (user database.User, session database.Session, ok bool, err error) {
	sessionKey, err := GetCredential(r)
	if err != nil {
		log.WithFields(log.Fields{
			"path":      r.URL.Path,
			"requestID": context.RequestID(r.Context()),
		}).Debug(err.Error())
		return user, session, false, nil
	}
	if sessionKey == "" {
		return user, session, false, nil
	}

	session, ok, err = findLiveSession(db, sessionKey, now)
	if err != nil || !ok {
		return user, session, false, err
	}

	err = db.Where("id = ? AND is_active = ?", session.UserID, true).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, session, false, nil
	} else if err != nil {
		return user, session, false, pkgErrors.Wrap(err, "finding user from session")
	}

	if err := db.Model(&session).Update("last_used_at", now.UTC()).Error; err != nil {
		log.ErrorWrap(err, "touching session")
	}

	return user, session, true, nil
}

// findLiveSession looks up the session with the given key, reporting false
// when it does not exist or has expired
func findLiveSession(db *gorm.DB, key string, now time.Time) (database.Session, bool, error) {
	var session database.Session

	err := db.Where("key = ?", key).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session, false, nil
	} else if err != nil {
		return session, false, pkgErrors.Wrap(err, "finding session")
	}

	if session.ExpiresAt.Before(now) {
		return session, false, nil
	}

	return session, true, nil
}
