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
	"github.com/studytrack/studytrack/pkg/server/database"
)

func TestPresentSubject(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 45, 123456789, time.UTC)
	updatedAt := time.Date(2025, 2, 20, 14, 45, 30, 987654321, time.UTC)
	finishedAt := time.Date(2025, 2, 21, 9, 0, 0, 0, time.UTC)

	testCases := []struct {
		name              string
		input             database.Subject
		expectedStart     string
		expectedEnd       string
		expectedMinutes   int
		expectedFinished  *time.Time
		expectedTopicsLen int
	}{
		{
			name: "morning window with topics",
			input: database.Subject{
				Model:       database.Model{ID: 1, CreatedAt: createdAt, UpdatedAt: updatedAt},
				Name:        "Math",
				Color:       "#ff0000",
				StartHour:   8,
				StartMinute: 0,
				EndHour:     9,
				EndMinute:   30,
				IsActive:    true,
				Topics: []database.Topic{
					{Model: database.Model{ID: 10}, SubjectID: 1, Name: "Algebra", IsActive: true},
					{Model: database.Model{ID: 11}, SubjectID: 1, Name: "Geometry", IsActive: true},
				},
			},
			expectedStart:     "08:00 AM",
			expectedEnd:       "09:30 AM",
			expectedMinutes:   90,
			expectedTopicsLen: 2,
		},
		{
			name: "midnight to afternoon, finished",
			input: database.Subject{
				Model:      database.Model{ID: 2, CreatedAt: createdAt, UpdatedAt: updatedAt},
				Name:       "History",
				StartHour:  0,
				EndHour:    13,
				EndMinute:  5,
				FinishedAt: &finishedAt,
			},
			expectedStart:     "12:00 AM",
			expectedEnd:       "01:05 PM",
			expectedMinutes:   785,
			expectedFinished:  &finishedAt,
			expectedTopicsLen: 0,
		},
		{
			name: "inverted window",
			input: database.Subject{
				Model:     database.Model{ID: 3, CreatedAt: createdAt, UpdatedAt: updatedAt},
				Name:      "Night",
				StartHour: 22,
				EndHour:   6,
			},
			expectedStart:     "10:00 PM",
			expectedEnd:       "06:00 AM",
			expectedMinutes:   0,
			expectedTopicsLen: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := PresentSubject(tc.input)

			assert.Equal(t, got.ID, tc.input.ID, "ID mismatch")
			assert.Equal(t, got.Name, tc.input.Name, "Name mismatch")
			assert.Equal(t, got.CreatedAt, FormatTS(createdAt), "CreatedAt mismatch")
			assert.Equal(t, got.UpdatedAt, FormatTS(updatedAt), "UpdatedAt mismatch")
			assert.Equal(t, got.StartLabel, tc.expectedStart, "StartLabel mismatch")
			assert.Equal(t, got.EndLabel, tc.expectedEnd, "EndLabel mismatch")
			assert.Equal(t, got.ScheduledMinutes, tc.expectedMinutes, "ScheduledMinutes mismatch")
			assert.Equal(t, len(got.Topics), tc.expectedTopicsLen, "Topics length mismatch")

			if tc.expectedFinished == nil {
				if got.FinishedAt != nil {
					t.Fatalf("FinishedAt should be nil, got %v", got.FinishedAt)
				}
			} else {
				assert.Equal(t, *got.FinishedAt, FormatTS(*tc.expectedFinished), "FinishedAt mismatch")
			}
		})
	}
}

func TestPresentSubjects(t *testing.T) {
	t.Run("empty is not nil", func(t *testing.T) {
		got := PresentSubjects(nil)
		if got == nil {
			t.Fatal("result should not be nil")
		}
		assert.Equal(t, len(got), 0, "length mismatch")
	})

	t.Run("keeps order", func(t *testing.T) {
		got := PresentSubjects([]database.Subject{
			{Model: database.Model{ID: 2}, Name: "B"},
			{Model: database.Model{ID: 1}, Name: "A"},
		})

		assert.Equal(t, len(got), 2, "length mismatch")
		assert.Equal(t, got[0].ID, 2, "first ID mismatch")
		assert.Equal(t, got[1].ID, 1, "second ID mismatch")
		if got[0].Topics == nil {
			t.Fatal("topics should be an empty slice")
		}
	})
}

func TestPresentTopic(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 8, 0, 0, 999, time.UTC)

	got := PresentTopic(database.Topic{
		Model:                database.Model{ID: 7, CreatedAt: createdAt, UpdatedAt: createdAt},
		SubjectID:            3,
		Name:                 "Derivatives",
		EstimatedTimeMinutes: 30,
		DifficultyLevel:      2,
		IsActive:             true,
	})

	assert.Equal(t, got.ID, 7, "ID mismatch")
	assert.Equal(t, got.SubjectID, 3, "SubjectID mismatch")
	assert.Equal(t, got.Name, "Derivatives", "Name mismatch")
	assert.Equal(t, got.EstimatedTimeMinutes, 30, "EstimatedTimeMinutes mismatch")
	assert.Equal(t, got.DifficultyLevel, 2, "DifficultyLevel mismatch")
	assert.Equal(t, got.IsActive, true, "IsActive mismatch")
	assert.Equal(t, got.CreatedAt, FormatTS(createdAt), "CreatedAt mismatch")
}
