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

	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/schedule"
)

// Topic is a result of PresentTopic
type Topic struct {
	ID                   int       `json:"id"`
	SubjectID            int       `json:"subject_id"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	EstimatedTimeMinutes int       `json:"estimated_time_minutes"`
	DifficultyLevel      int       `json:"difficulty_level"`
	IsActive             bool      `json:"is_active"`
}

// PresentTopic presents a topic
func PresentTopic(topic database.Topic) Topic {
	return Topic{
		ID:                   topic.ID,
		SubjectID:            topic.SubjectID,
		CreatedAt:            FormatTS(topic.CreatedAt),
		UpdatedAt:            FormatTS(topic.UpdatedAt),
		Name:                 topic.Name,
		Description:          topic.Description,
		EstimatedTimeMinutes: topic.EstimatedTimeMinutes,
		DifficultyLevel:      topic.DifficultyLevel,
		IsActive:             topic.IsActive,
	}
}

// PresentTopics presents topics
func PresentTopics(topics []database.Topic) []Topic {
	ret := []Topic{}

	for _, topic := range topics {
		p := PresentTopic(topic)
		ret = append(ret, p)
	}

	return ret
}

// Subject is a result of PresentSubject
type Subject struct {
	ID               int        `json:"id"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Color            string     `json:"color"`
	DailyTimeMinutes int        `json:"daily_time_minutes"`
	StartHour        int        `json:"start_hour"`
	StartMinute      int        `json:"start_minute"`
	EndHour          int        `json:"end_hour"`
	EndMinute        int        `json:"end_minute"`
	StartLabel       string     `json:"start_label"`
	EndLabel         string     `json:"end_label"`
	ScheduledMinutes int        `json:"scheduled_minutes"`
	IsActive         bool       `json:"is_active"`
	FinishedAt       *time.Time `json:"finished_at"`
	Topics           []Topic    `json:"topics"`
}

// PresentSubject presents a subject along with its loaded topics
func PresentSubject(subject database.Subject) Subject {
	return Subject{
		ID:               subject.ID,
		CreatedAt:        FormatTS(subject.CreatedAt),
		UpdatedAt:        FormatTS(subject.UpdatedAt),
		Name:             subject.Name,
		Description:      subject.Description,
		Color:            subject.Color,
		DailyTimeMinutes: subject.DailyTimeMinutes,
		StartHour:        subject.StartHour,
		StartMinute:      subject.StartMinute,
		EndHour:          subject.EndHour,
		EndMinute:        subject.EndMinute,
		StartLabel:       schedule.FormatAMPM(subject.StartHour, subject.StartMinute),
		EndLabel:         schedule.FormatAMPM(subject.EndHour, subject.EndMinute),
		ScheduledMinutes: schedule.MinutesBetween(subject.StartHour, subject.StartMinute, subject.EndHour, subject.EndMinute),
		IsActive:         subject.IsActive,
		FinishedAt:       formatTSPtr(subject.FinishedAt),
		Topics:           PresentTopics(subject.Topics),
	}
}

// PresentSubjects presents subjects
func PresentSubjects(subjects []database.Subject) []Subject {
	ret := []Subject{}

	for _, subject := range subjects {
		p := PresentSubject(subject)
		ret = append(ret, p)
	}

	return ret
}
