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

// Package schedule provides pure functions over subject time windows, break
// timers and completion timestamps. Nothing here touches the store; callers
// pass the current time in.
package schedule

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultStartHour is the start hour used when none can be parsed
	DefaultStartHour = 8
	// DefaultEndHour is the end hour used when none can be parsed
	DefaultEndHour = 9
)

// MinutesBetween returns the scheduled minutes of a window. Windows do not wrap
// past midnight, so an end earlier than the start yields zero.
func MinutesBetween(startHour, startMinute, endHour, endMinute int) int {
	d := (endHour*60 + endMinute) - (startHour*60 + startMinute)
	if d < 0 {
		return 0
	}

	return d
}

// Window is a daily active time window
type Window struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// Minutes returns the scheduled minutes of the window
func (w Window) Minutes() int {
	return MinutesBetween(w.StartHour, w.StartMinute, w.EndHour, w.EndMinute)
}

// WindowInput holds the raw window fields submitted by a client. Either the
// 24-hour hour fields or the 12-hour hour and AM/PM pairs may be given.
type WindowInput struct {
	StartHour   Int
	StartMinute Int
	EndHour     Int
	EndMinute   Int

	StartHour12 Int
	StartAMPM   string
	EndHour12   Int
	EndAMPM     string
}

// To24Hour converts a 12-hour clock hour to a 24-hour one. It reports false
// when the hour is missing or the suffix is neither AM nor PM.
func To24Hour(h12 Int, ampm string) (int, bool) {
	if !h12.Valid {
		return 0, false
	}

	switch strings.ToUpper(strings.TrimSpace(ampm)) {
	case "AM":
		return h12.Value % 12, true
	case "PM":
		return h12.Value%12 + 12, true
	default:
		return 0, false
	}
}

func resolveHour(h12 Int, ampm string, h24 Int, def int) int {
	if h, ok := To24Hour(h12, ampm); ok {
		return h
	}

	return h24.Or(def)
}

// ResolveWindow turns raw input into a window. A parseable 12-hour pair takes
// precedence over the 24-hour hour field. Missing or unparseable hours fall
// back to 8:00-9:00 and minutes to zero. Values are not range checked.
func ResolveWindow(in WindowInput) Window {
	return Window{
		StartHour:   resolveHour(in.StartHour12, in.StartAMPM, in.StartHour, DefaultStartHour),
		StartMinute: in.StartMinute.Or(0),
		EndHour:     resolveHour(in.EndHour12, in.EndAMPM, in.EndHour, DefaultEndHour),
		EndMinute:   in.EndMinute.Or(0),
	}
}

// FormatAMPM renders a 24-hour time as a 12-hour label such as "08:05 AM"
func FormatAMPM(hour, minute int) string {
	suffix := "AM"
	if hour%24 >= 12 {
		suffix = "PM"
	}

	h := hour % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%02d:%02d %s", h, minute, suffix)
}

// ElapsedMinutes returns the whole minutes between start and end, rounded
// down and never negative
func ElapsedMinutes(start, end time.Time) int {
	d := end.Sub(start)
	if d <= 0 {
		return 0
	}

	return int(d / time.Minute)
}

// FinishedOn reports whether finishedAt falls on the same calendar date as now
// in the given location
func FinishedOn(finishedAt *time.Time, now time.Time, loc *time.Location) bool {
	if finishedAt == nil {
		return false
	}
	if loc == nil {
		loc = time.Local
	}

	fy, fm, fd := finishedAt.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()

	return fy == ny && fm == nm && fd == nd
}
