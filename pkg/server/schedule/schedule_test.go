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

package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/studytrack/studytrack/pkg/assert"
)

func TestMinutesBetween(t *testing.T) {
	testCases := []struct {
		sh, sm, eh, em int
		expected       int
	}{
		{8, 0, 9, 30, 90},
		{14, 0, 15, 0, 60},
		{8, 0, 8, 0, 0},
		{9, 0, 8, 0, 0},
		{23, 59, 0, 0, 0},
		{0, 0, 23, 59, 1439},
		{8, 45, 9, 15, 30},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%02d:%02d-%02d:%02d", tc.sh, tc.sm, tc.eh, tc.em), func(t *testing.T) {
			assert.Equal(t, MinutesBetween(tc.sh, tc.sm, tc.eh, tc.em), tc.expected, "minutes mismatch")
		})
	}
}

func TestMinutesBetween_neverNegative(t *testing.T) {
	for sh := 0; sh < 24; sh += 3 {
		for eh := 0; eh < 24; eh += 3 {
			for _, sm := range []int{0, 30, 59} {
				for _, em := range []int{0, 15, 59} {
					got := MinutesBetween(sh, sm, eh, em)
					d := (eh*60 + em) - (sh*60 + sm)
					if d < 0 {
						d = 0
					}

					if got != d {
						t.Fatalf("%d:%d-%d:%d: got %d, want %d", sh, sm, eh, em, got, d)
					}
				}
			}
		}
	}
}

func TestTo24Hour(t *testing.T) {
	testCases := []struct {
		h12      Int
		ampm     string
		expected int
		ok       bool
	}{
		{NewInt(12), "AM", 0, true},
		{NewInt(1), "AM", 1, true},
		{NewInt(11), "am", 11, true},
		{NewInt(12), "PM", 12, true},
		{NewInt(1), " pm ", 13, true},
		{NewInt(11), "PM", 23, true},
		{NewInt(13), "PM", 13, true},
		{NewInt(8), "", 0, false},
		{NewInt(8), "XM", 0, false},
		{Int{}, "AM", 0, false},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("case %d", idx), func(t *testing.T) {
			h, ok := To24Hour(tc.h12, tc.ampm)

			assert.Equal(t, ok, tc.ok, "ok mismatch")
			assert.Equal(t, h, tc.expected, "hour mismatch")
		})
	}
}

func TestResolveWindow(t *testing.T) {
	testCases := []struct {
		name     string
		input    WindowInput
		expected Window
	}{
		{
			name:     "empty input falls back to defaults",
			input:    WindowInput{},
			expected: Window{8, 0, 9, 0},
		},
		{
			name: "24-hour fields",
			input: WindowInput{
				StartHour:   NewInt(14),
				StartMinute: NewInt(15),
				EndHour:     NewInt(16),
				EndMinute:   NewInt(45),
			},
			expected: Window{14, 15, 16, 45},
		},
		{
			name: "12-hour fields take precedence",
			input: WindowInput{
				StartHour:   NewInt(3),
				EndHour:     NewInt(4),
				StartHour12: NewInt(2),
				StartAMPM:   "PM",
				EndHour12:   NewInt(12),
				EndAMPM:     "AM",
			},
			expected: Window{14, 0, 0, 0},
		},
		{
			name: "incomplete 12-hour pair falls back to 24-hour field",
			input: WindowInput{
				StartHour:   NewInt(10),
				StartHour12: NewInt(2),
				EndHour12:   NewInt(5),
				EndAMPM:     "PM",
			},
			expected: Window{10, 0, 17, 0},
		},
		{
			name: "out of range values are kept",
			input: WindowInput{
				StartHour:   NewInt(30),
				StartMinute: NewInt(-5),
				EndHour:     NewInt(25),
				EndMinute:   NewInt(99),
			},
			expected: Window{30, -5, 25, 99},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.DeepEqual(t, ResolveWindow(tc.input), tc.expected, "window mismatch")
		})
	}
}

func TestWindowMinutes(t *testing.T) {
	assert.Equal(t, Window{8, 0, 9, 30}.Minutes(), 90, "minutes mismatch")
	assert.Equal(t, Window{10, 0, 9, 0}.Minutes(), 0, "minutes mismatch")
}

func TestFormatAMPM(t *testing.T) {
	testCases := []struct {
		hour, minute int
		expected     string
	}{
		{0, 0, "12:00 AM"},
		{8, 5, "08:05 AM"},
		{12, 0, "12:00 PM"},
		{13, 30, "01:30 PM"},
		{23, 59, "11:59 PM"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, FormatAMPM(tc.hour, tc.minute), tc.expected, "label mismatch")
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		end      time.Time
		expected int
	}{
		{"zero", t0, 0},
		{"under a minute", t0.Add(59 * time.Second), 0},
		{"floors partial minutes", t0.Add(25*time.Minute + 59*time.Second), 25},
		{"exact", t0.Add(90 * time.Minute), 90},
		{"end before start", t0.Add(-10 * time.Minute), 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, ElapsedMinutes(t0, tc.end), tc.expected, "elapsed mismatch")
		})
	}
}

func TestFinishedOn(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	now := time.Date(2025, 3, 1, 16, 0, 0, 0, time.UTC)
	sameDay := time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)
	prevDay := time.Date(2025, 2, 28, 23, 30, 0, 0, time.UTC)
	afterMidnightSeoul := time.Date(2025, 3, 2, 2, 0, 0, 0, time.UTC)
	lateUTC := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		finishedAt *time.Time
		now        time.Time
		loc        *time.Location
		expected   bool
	}{
		{"nil", nil, now, time.UTC, false},
		{"same utc date", &sameDay, now, time.UTC, true},
		{"previous utc date", &prevDay, now, time.UTC, false},
		// 2025-03-01 10:00 in Seoul while it is already 2025-03-02 01:00 there
		{"same utc date is a different local date", &sameDay, now, seoul, false},
		// both are 2025-03-02 in Seoul
		{"different utc date is the same local date", &lateUTC, afterMidnightSeoul, seoul, true},
		{"different utc date", &lateUTC, afterMidnightSeoul, time.UTC, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, FinishedOn(tc.finishedAt, tc.now, tc.loc), tc.expected, "finished mismatch")
		})
	}
}

func TestBreak(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(30 * time.Minute)
	past := now.Add(-time.Second)

	t.Run("off", func(t *testing.T) {
		assert.DeepEqual(t, Break(now, nil), BreakState{}, "state mismatch")
		assert.Equal(t, BreakActive(now, nil), false, "active mismatch")
	})

	t.Run("running", func(t *testing.T) {
		s := Break(now, &future)

		assert.Equal(t, s.OnBreak, true, "OnBreak mismatch")
		assert.Equal(t, s.RemainingSeconds, 1800, "remaining mismatch")
		assert.Equal(t, s.Until.Equal(future), true, "until mismatch")
		assert.Equal(t, BreakActive(now, &future), true, "active mismatch")
	})

	t.Run("expired", func(t *testing.T) {
		assert.DeepEqual(t, Break(now, &past), BreakState{}, "state mismatch")
		assert.Equal(t, BreakActive(now, &past), false, "active mismatch")
	})

	t.Run("ends exactly now", func(t *testing.T) {
		assert.Equal(t, BreakActive(now, &now), false, "active mismatch")
	})
}
