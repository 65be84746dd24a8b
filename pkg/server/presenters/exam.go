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
)

// Exam is a result of PresentExam
type Exam struct {
	ID        int       `json:"id"`
	SubjectID int       `json:"subject_id"`
	CreatedAt time.Time `json:"created_at"`
	ExamDate  time.Time `json:"exam_date"`
	IsActive  bool      `json:"is_active"`
}

// PresentExam presents an exam
func PresentExam(e database.ExamMode) Exam {
	return Exam{
		ID:        e.ID,
		SubjectID: e.SubjectID,
		CreatedAt: FormatTS(e.CreatedAt),
		ExamDate:  FormatTS(e.ExamDate),
		IsActive:  e.IsActive,
	}
}

// PresentExams presents exams
func PresentExams(exams []database.ExamMode) []Exam {
	ret := []Exam{}

	for _, e := range exams {
		ret = append(ret, PresentExam(e))
	}

	return ret
}
