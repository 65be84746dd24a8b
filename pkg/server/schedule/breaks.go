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
	"time"
)

// BreakState is the derived state of a user's break timer
type BreakState struct {
	OnBreak          bool
	Until            *time.Time
	RemainingSeconds int
}

// BreakActive reports whether a break ending at until is still running at now
func BreakActive(now time.Time, until *time.Time) bool {
	return until != nil && until.After(now)
}

// Break derives the break state at now. An expired timer reads as off with no
// end time so that callers can clear it.
func Break(now time.Time, until *time.Time) BreakState {
	if !BreakActive(now, until) {
		return BreakState{}
	}

	u := *until

	return BreakState{
		OnBreak:          true,
		Until:            &u,
		RemainingSeconds: int(u.Sub(now) / time.Second),
	}
}
