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
	"testing"
	"time"

	"github.com/studytrack/studytrack/pkg/assert"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/database"
)

func TestPresentStudySession(t *testing.T) {
	start := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	duration := 45
	rating := 4
	topicID := 3

	testCases := []struct {
		name               string
		input              database.StudySession
		expectedInProgress bool
	}{
		{
			name: "in progress",
			input: database.StudySession{
				Model:     database.Model{ID: 1},
				SubjectID: 2,
				StartTime: start,
			},
			expectedInProgress: true,
		},
		{
			name: "closed",
			input: database.StudySession{
				Model:                 database.Model{ID: 2},
				SubjectID:             2,
				TopicID:               &topicID,
				StartTime:             start,
				EndTime:               &end,
				ActualDurationMinutes: &duration,
				Notes:                 "chapter 3",
				Rating:                &rating,
			},
			expectedInProgress: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PresentStudySession(tc.input)

			assert.Equal(t, got.ID, tc.input.ID, "ID mismatch")
			assert.Equal(t, got.SubjectID, tc.input.SubjectID, "SubjectID mismatch")
			assert.Equal(t, got.StartTime, FormatTS(start), "StartTime mismatch")
			assert.Equal(t, got.InProgress, tc.expectedInProgress, "InProgress mismatch")
			assert.Equal(t, got.Notes, tc.input.Notes, "Notes mismatch")

			if tc.input.EndTime == nil {
				if got.EndTime != nil {
					t.Fatal("EndTime should be nil")
				}
			} else {
				assert.Equal(t, *got.EndTime, FormatTS(end), "EndTime mismatch")
				assert.Equal(t, *got.ActualDurationMinutes, duration, "ActualDurationMinutes mismatch")
				assert.Equal(t, *got.Rating, rating, "Rating mismatch")
				assert.Equal(t, *got.TopicID, topicID, "TopicID mismatch")
			}
		})
	}
}

func TestPresentCompletion(t *testing.T) {
	completedAt := time.Date(2025, 4, 1, 10, 0, 0, 1500, time.UTC)

	got := PresentCompletion(app.CompletionResult{
		ClosedSession: true,
		SessionID:     9,
		CompletedAt:   completedAt,
	})

	assert.Equal(t, got.ClosedSession, true, "ClosedSession mismatch")
	assert.Equal(t, got.SessionID, 9, "SessionID mismatch")
	assert.Equal(t, got.CompletedAt, FormatTS(completedAt), "CompletedAt mismatch")
}
