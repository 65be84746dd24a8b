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

package database

import (
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user
type User struct {
	Model
	Username              string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email                 string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	Password              string     `json:"-" gorm:"type:varchar(128)"`
	FirstName             string     `gorm:"type:varchar(64);not null"`
	LastName              string     `gorm:"type:varchar(64);not null"`
	IsActive              bool       `gorm:"default:true"`
	ReminderSoundFilename *string    `gorm:"type:varchar(256)"`
	ReminderSoundSeconds  int        `gorm:"default:10"`
	BreakDurationMinutes  int        `gorm:"default:30"`
	LunchBreakUntil       *time.Time
	LastLoginAt           *time.Time `json:"-"`

	Subjects      []Subject      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	StudySessions []StudySession `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ExamModes     []ExamMode     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Sessions      []Session      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// Subject is a model for a subject with a daily active time window. The window
// columns carry no database default because midnight is a valid zero value.
type Subject struct {
	Model
	UserID           int    `gorm:"index;not null"`
	Name             string `gorm:"type:varchar(100);not null"`
	Description      string
	Color            string `gorm:"type:varchar(7);default:'#007bff'"`
	DailyTimeMinutes int    `gorm:"not null"`
	StartHour        int    `gorm:"not null"`
	StartMinute      int    `gorm:"not null"`
	EndHour          int    `gorm:"not null"`
	EndMinute        int    `gorm:"not null"`
	IsActive         bool   `gorm:"default:true"`
	FinishedAt       *time.Time

	Topics        []Topic        `gorm:"constraint:OnDelete:CASCADE"`
	StudySessions []StudySession `gorm:"constraint:OnDelete:CASCADE"`
	ExamModes     []ExamMode     `gorm:"constraint:OnDelete:CASCADE"`
}

// Topic is a model for a subdivision of a subject
type Topic struct {
	Model
	SubjectID            int    `gorm:"index;not null"`
	Name                 string `gorm:"type:varchar(100);not null"`
	Description          string
	EstimatedTimeMinutes int    `gorm:"default:30"`
	DifficultyLevel      int    `gorm:"default:1"`
	IsActive             bool   `gorm:"default:true"`

	StudySessions []StudySession `gorm:"constraint:OnDelete:SET NULL"`
}

// StudySession is a model for a timed record of study activity. A nil
// EndTime means the session is still in progress.
type StudySession struct {
	Model
	UserID                int        `gorm:"index;not null"`
	SubjectID             int        `gorm:"index;not null"`
	TopicID               *int       `gorm:"index"`
	StartTime             time.Time  `gorm:"not null;index"`
	EndTime               *time.Time
	ActualDurationMinutes *int
	Notes                 string
	Rating                *int
}

// ExamMode is a model for an upcoming exam on a subject
type ExamMode struct {
	Model
	UserID    int       `gorm:"index;not null"`
	SubjectID int       `gorm:"index;not null"`
	ExamDate  time.Time `gorm:"not null"`
	IsActive  bool      `gorm:"default:true"`
}

// Session represents a user login session
type Session struct {
	Model
	UserID     int    `gorm:"index"`
	Key        string `gorm:"uniqueIndex"`
	LastUsedAt time.Time
	ExpiresAt  time.Time
}

// TableName keeps the exam table name singular
func (ExamMode) TableName() string {
	return "exam_mode"
}
