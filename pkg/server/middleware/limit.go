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
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/studytrack/studytrack/pkg/server/config"
	"github.com/studytrack/studytrack/pkg/server/context"
	"github.com/studytrack/studytrack/pkg/server/log"
	"golang.org/x/time/rate"
)

// Limits is a request budget granted to each client address
type Limits struct {
	// PerSecond is the sustained number of requests per second
	PerSecond float64
	// Burst is the number of requests accepted at once
	Burst int
}

var (
	// APILimits applies to every rate limited API route
	APILimits = Limits{PerSecond: 50, Burst: 100}
	// CredentialLimits applies to the routes that check a password
	CredentialLimits = Limits{PerSecond: 0.5, Burst: 10}
)

const (
	// visitorTTL is how long an idle visitor is remembered
	visitorTTL = 3 * time.Minute
	// pruneInterval is the minimum time between two sweeps of idle visitors
	pruneInterval = time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds the rate limiting state for visitors
type RateLimiter struct {
	limits    Limits
	now       func() time.Time
	visitors  map[string]*visitor
	lastPrune time.Time
	mtx       sync.Mutex
}

// NewRateLimiter creates a new rate limiter granting the given limits to
// every visitor
func NewRateLimiter(limits Limits) *RateLimiter {
	return &RateLimiter{
		limits:    limits,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
		lastPrune: time.Now(),
	}
}

var (
	apiLimiter        = NewRateLimiter(APILimits)
	credentialLimiter = NewRateLimiter(CredentialLimits)
)

// getVisitor returns the limiter of the visitor with the given identifier,
// registering the visitor if not seen before
func (rl *RateLimiter) getVisitor(identifier string, now time.Time) *rate.Limiter {
	rl.mtx.Lock()
	defer rl.mtx.Unlock()

	if now.Sub(rl.lastPrune) >= pruneInterval {
		rl.prune(now)
	}

	v, ok := rl.visitors[identifier]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Limit(rl.limits.PerSecond), rl.limits.Burst),
		}
		rl.visitors[identifier] = v
	}
	v.lastSeen = now

	return v.limiter
}

// prune forgets visitors idle for longer than visitorTTL. The caller holds
// the lock.
func (rl *RateLimiter) prune(now time.Time) int {
	count := 0

	for identifier, v := range rl.visitors {
		if now.Sub(v.lastSeen) > visitorTTL {
			delete(rl.visitors, identifier)
			count++
		}
	}
	rl.lastPrune = now

	return count
}

// allow takes one request from the visitor's budget. When the budget is
// spent it reports how long the visitor has to wait.
func (rl *RateLimiter) allow(identifier string) (bool, time.Duration) {
	now := rl.now()
	limiter := rl.getVisitor(identifier, now)

	r := limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Second
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}

	return true, 0
}

// lookupIP returns the request's IP
func lookupIP(r *http.Request) string {
	realIP := r.Header.Get("X-Real-IP")
	forwardedFor := r.Header.Get("X-Forwarded-For")

	if forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}

// retryAfterSeconds renders a wait as whole seconds, never less than one
func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}

	return strconv.Itoa(secs)
}

// Limit is a middleware to rate limit the handler
func (rl *RateLimiter) Limit(next http.Handler) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := lookupIP(r)

		ok, wait := rl.allow(identifier)
		if !ok {
			log.WithFields(log.Fields{
				"ip":        identifier,
				"path":      r.URL.Path,
				"requestID": context.RequestID(r.Context()),
			}).Warn("Too many requests")

			w.Header().Set("Retry-After", retryAfterSeconds(wait))
			RespondError(w, http.StatusTooManyRequests, "rate_limit", "Too many requests")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func limitDisabled() bool {
	return os.Getenv("APP_ENV") == config.AppEnvTest
}

// ApplyLimit applies the API rate limit conditionally
func ApplyLimit(h http.HandlerFunc, rateLimit bool) http.Handler {
	ret := h

	if rateLimit && !limitDisabled() {
		ret = apiLimiter.Limit(ret)
	}

	return ret
}

// LimitCredentials applies the stricter budget of routes that check a
// password, on top of the API rate limit
func LimitCredentials(h http.HandlerFunc) http.HandlerFunc {
	if limitDisabled() {
		return h
	}

	return credentialLimiter.Limit(h)
}
