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

package presenters

import (
	"time"

	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/schedule"
)

// BreakState is a result of PresentBreakState
type BreakState struct {
	OnBreak          bool       `json:"on_break"`
	Until            *time.Time `json:"until"`
	RemainingSeconds int        `json:"remaining_seconds"`
}

// PresentBreakState presents a break state
func PresentBreakState(b schedule.BreakState) BreakState {
	return BreakState{
		OnBreak:          b.OnBreak,
		Until:            formatTSPtr(b.Until),
		RemainingSeconds: b.RemainingSeconds,
	}
}

// Stats is a result of PresentStats
type Stats struct {
	ActiveSubjects        int   `json:"active_subjects"`
	FinishedToday         int   `json:"finished_today"`
	Pending               int   `json:"pending"`
	TotalScheduledMinutes int   `json:"total_scheduled_minutes"`
	FinishedSubjectIDs    []int `json:"finished_subject_ids"`
}

// PresentStats presents dashboard figures
func PresentStats(s app.Stats) Stats {
	ids := []int{}
	ids = append(ids, s.FinishedSubjectIDs...)

	return Stats{
		ActiveSubjects:        s.ActiveSubjects,
		FinishedToday:         s.FinishedToday,
		Pending:               s.Pending,
		TotalScheduledMinutes: s.TotalScheduledMinutes,
		FinishedSubjectIDs:    ids,
	}
}

// Dashboard is the payload of the dashboard endpoint
type Dashboard struct {
	User           User           `json:"user"`
	Stats          Stats          `json:"stats"`
	Break          BreakState     `json:"break"`
	Subjects       []Subject      `json:"subjects"`
	RecentSessions []StudySession `json:"recent_sessions"`
	Exams          []Exam         `json:"exams"`
}
