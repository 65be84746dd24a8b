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
	"github.com/studytrack/studytrack/pkg/server/database"
)

// StudySession is a result of PresentStudySession
type StudySession struct {
	ID                    int        `json:"id"`
	SubjectID             int        `json:"subject_id"`
	TopicID               *int       `json:"topic_id"`
	StartTime             time.Time  `json:"start_time"`
	EndTime               *time.Time `json:"end_time"`
	ActualDurationMinutes *int       `json:"actual_duration_minutes"`
	Notes                 string     `json:"notes"`
	Rating                *int       `json:"rating"`
	InProgress            bool       `json:"in_progress"`
}

// PresentStudySession presents a study session
func PresentStudySession(s database.StudySession) StudySession {
	return StudySession{
		ID:                    s.ID,
		SubjectID:             s.SubjectID,
		TopicID:               s.TopicID,
		StartTime:             FormatTS(s.StartTime),
		EndTime:               formatTSPtr(s.EndTime),
		ActualDurationMinutes: s.ActualDurationMinutes,
		Notes:                 s.Notes,
		Rating:                s.Rating,
		InProgress:            s.EndTime == nil,
	}
}

// PresentStudySessions presents study sessions
func PresentStudySessions(sessions []database.StudySession) []StudySession {
	ret := []StudySession{}

	for _, s := range sessions {
		p := PresentStudySession(s)
		ret = append(ret, p)
	}

	return ret
}

// Completion is a result of PresentCompletion
type Completion struct {
	ClosedSession bool      `json:"closed_session"`
	SessionID     int       `json:"session_id"`
	CompletedAt   time.Time `json:"completed_at"`
}

// PresentCompletion presents the outcome of finishing a subject
func PresentCompletion(r app.CompletionResult) Completion {
	return Completion{
		ClosedSession: r.ClosedSession,
		SessionID:     r.SessionID,
		CompletedAt:   FormatTS(r.CompletedAt),
	}
}
