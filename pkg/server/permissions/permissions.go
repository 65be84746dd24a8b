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

package permissions

import (
	"github.com/studytrack/studytrack/pkg/server/database"
)

// ViewSubject checks if the user of the given id owns the given subject
func ViewSubject(userID int, subject database.Subject) bool {
	if userID == 0 {
		return false
	}
	if subject.UserID == 0 {
		return false
	}

	return subject.UserID == userID
}

// ViewTopic checks if the user of the given id owns the given topic through
// its parent subject
func ViewTopic(userID int, topic database.Topic, subject database.Subject) bool {
	if topic.SubjectID == 0 || topic.SubjectID != subject.ID {
		return false
	}

	return ViewSubject(userID, subject)
}

// ViewStudySession checks if the user of the given id owns the given study session
func ViewStudySession(userID int, session database.StudySession) bool {
	if userID == 0 {
		return false
	}
	if session.UserID == 0 {
		return false
	}

	return session.UserID == userID
}

// ViewExam checks if the user of the given id owns the given exam
func ViewExam(userID int, exam database.ExamMode) bool {
	if userID == 0 {
		return false
	}
	if exam.UserID == 0 {
		return false
	}

	return exam.UserID == userID
}
