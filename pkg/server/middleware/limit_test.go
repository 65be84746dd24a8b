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
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studytrack/studytrack/pkg/assert"
	"github.com/studytrack/studytrack/pkg/server/config"
)

// newTestLimiter returns a limiter whose clock reads *now
func newTestLimiter(limits Limits, now *time.Time) *RateLimiter {
	rl := NewRateLimiter(limits)
	rl.now = func() time.Time { return *now }
	rl.lastPrune = *now

	return rl
}

func doLimited(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/test", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestLimit(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(Limits{PerSecond: 0.5, Burst: 3}, &now)
	h := rl.Limit(okHandler)

	for i := 0; i < 3; i++ {
		w := doLimited(h, "192.168.1.1:1234")
		assert.Equal(t, w.Code, http.StatusOK, "burst request status mismatch")
	}

	w := doLimited(h, "192.168.1.1:1234")
	assert.Equal(t, w.Code, http.StatusTooManyRequests, "status mismatch after burst")
	assert.Equal(t, w.Header().Get("Retry-After"), "2", "Retry-After mismatch")
	assert.Equal(t, w.Header().Get("Content-Type"), "application/json", "Content-Type mismatch")

	// a rejected request does not consume the budget
	now = now.Add(2 * time.Second)
	w = doLimited(h, "192.168.1.1:1234")
	assert.Equal(t, w.Code, http.StatusOK, "status mismatch after waiting")
}

func TestLimit_DifferentIPs(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(Limits{PerSecond: 1, Burst: 2}, &now)
	h := rl.Limit(okHandler)

	for i := 0; i < 5; i++ {
		doLimited(h, "192.168.1.1:1234")
	}
	w := doLimited(h, "192.168.1.1:1234")
	assert.Equal(t, w.Code, http.StatusTooManyRequests, "first IP should be limited")

	w = doLimited(h, "192.168.1.2:5678")
	assert.Equal(t, w.Code, http.StatusOK, "different IP should succeed")
}

func TestLimit_Prune(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	rl := newTestLimiter(APILimits, &now)
	h := rl.Limit(okHandler)

	doLimited(h, "10.0.0.1:1")
	doLimited(h, "10.0.0.2:1")
	assert.Equal(t, len(rl.visitors), 2, "visitor count mismatch")

	now = now.Add(visitorTTL + time.Second)
	doLimited(h, "10.0.0.3:1")

	assert.Equal(t, len(rl.visitors), 1, "idle visitors should be pruned")
	_, ok := rl.visitors["10.0.0.3:1"]
	assert.Equal(t, ok, true, "latest visitor should be kept")
}

func TestLookupIP(t *testing.T) {
	testCases := []struct {
		name         string
		forwardedFor string
		realIP       string
		expected     string
	}{
		{
			name:     "remote address",
			expected: "192.0.2.1:1234",
		},
		{
			name:     "real ip",
			realIP:   "203.0.113.9",
			expected: "203.0.113.9",
		},
		{
			name:         "forwarded for takes the first hop",
			forwardedFor: " 198.51.100.7 , 10.0.0.1",
			realIP:       "203.0.113.9",
			expected:     "198.51.100.7",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tc.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tc.forwardedFor)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}

			assert.Equal(t, lookupIP(req), tc.expected, "ip mismatch")
		})
	}
}

func TestRetryAfterSeconds(t *testing.T) {
	testCases := []struct {
		wait     time.Duration
		expected string
	}{
		{wait: 0, expected: "1"},
		{wait: 300 * time.Millisecond, expected: "1"},
		{wait: 2 * time.Second, expected: "2"},
		{wait: 2100 * time.Millisecond, expected: "3"},
	}

	for _, tc := range testCases {
		t.Run(tc.wait.String(), func(t *testing.T) {
			assert.Equal(t, retryAfterSeconds(tc.wait), tc.expected, "seconds mismatch")
		})
	}
}

func TestLimitCredentials_TestEnv(t *testing.T) {
	t.Setenv("APP_ENV", config.AppEnvTest)

	h := LimitCredentials(okHandler)
	for i := 0; i < CredentialLimits.Burst+5; i++ {
		w := doLimited(h, "192.168.1.9:1")
		assert.Equal(t, w.Code, http.StatusOK, "limit should be off in the test environment")
	}
}
