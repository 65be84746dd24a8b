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

package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/studytrack/studytrack/pkg/assert"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/presenters"
	"github.com/studytrack/studytrack/pkg/server/testutils"
)

func TestCreateExam(t *testing.T) {
	testCases := []struct {
		name         string
		body         string
		expectedDate time.Time
	}{
		{
			name:         "calendar date",
			body:         `{"exam_date": "2009-12-01"}`,
			expectedDate: time.Date(2009, 12, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:         "timestamp",
			body:         `{"exam_date": "2009-12-01T09:30:00+02:00"}`,
			expectedDate: time.Date(2009, 12, 1, 7, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, server := setupServer(t)
			user := testutils.SetupUserData(a.DB, "alice", "pass1234")
			s1 := testutils.SetupSubject(a.DB, user.ID, "Math", 8, 0, 9, 0)

			req := testutils.MakeReq(server.URL, "POST", fmt.Sprintf("/api/subjects/%d/exams", s1.ID), tc.body)
			res := testutils.HTTPAuthDo(t, a.DB, req, user)

			assert.StatusCodeEquals(t, res, http.StatusCreated, "")

			var got presenters.Exam
			testutils.MustDecodeJSON(t, res, &got)

			var exam database.ExamMode
			testutils.MustExec(t, a.DB.Where("id = ?", got.ID).First(&exam), "finding exam")
			assert.Equal(t, exam.UserID, user.ID, "user mismatch")
			assert.Equal(t, exam.SubjectID, s1.ID, "subject mismatch")
			assert.Equal(t, exam.IsActive, true, "is active mismatch")
			assert.Equal(t, exam.ExamDate.Equal(tc.expectedDate), true, fmt.Sprintf("exam date mismatch: %s", exam.ExamDate))
		})
	}

	invalidCases := []struct {
		name string
		body string
	}{
		{
			name: "missing date",
			body: `{}`,
		},
		{
			name: "malformed date",
			body: `{"exam_date": "next tuesday"}`,
		},
	}

	for _, tc := range invalidCases {
		t.Run(tc.name, func(t *testing.T) {
			a, server := setupServer(t)
			user := testutils.SetupUserData(a.DB, "alice", "pass1234")
			s1 := testutils.SetupSubject(a.DB, user.ID, "Math", 8, 0, 9, 0)

			req := testutils.MakeReq(server.URL, "POST", fmt.Sprintf("/api/subjects/%d/exams", s1.ID), tc.body)
			res := testutils.HTTPAuthDo(t, a.DB, req, user)

			assert.StatusCodeEquals(t, res, http.StatusBadRequest, "")
			assertErrorKind(t, res, "validation")

			var count int64
			testutils.MustExec(t, a.DB.Model(&database.ExamMode{}).Count(&count), "counting exams")
			assert.Equal(t, count, int64(0), "exam count mismatch")
		})
	}

	t.Run("subject of another user", func(t *testing.T) {
		a, server := setupServer(t)
		alice := testutils.SetupUserData(a.DB, "alice", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bobby", "pass1234")
		s1 := testutils.SetupSubject(a.DB, alice.ID, "Math", 8, 0, 9, 0)

		req := testutils.MakeReq(server.URL, "POST", fmt.Sprintf("/api/subjects/%d/exams", s1.ID), `{"exam_date": "2009-12-01"}`)
		res := testutils.HTTPAuthDo(t, a.DB, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "")
	})
}

func TestGetExams(t *testing.T) {
	a, server := setupServer(t)
	alice := testutils.SetupUserData(a.DB, "alice", "pass1234")
	bob := testutils.SetupUserData(a.DB, "bobby", "pass1234")
	s1 := testutils.SetupSubject(a.DB, alice.ID, "Math", 8, 0, 9, 0)
	s2 := testutils.SetupSubject(a.DB, bob.ID, "History", 8, 0, 9, 0)

	later := database.ExamMode{UserID: alice.ID, SubjectID: s1.ID, ExamDate: time.Date(2010, 1, 20, 0, 0, 0, 0, time.UTC), IsActive: true}
	sooner := database.ExamMode{UserID: alice.ID, SubjectID: s1.ID, ExamDate: time.Date(2009, 12, 20, 0, 0, 0, 0, time.UTC), IsActive: true}
	other := database.ExamMode{UserID: bob.ID, SubjectID: s2.ID, ExamDate: time.Date(2009, 12, 1, 0, 0, 0, 0, time.UTC), IsActive: true}
	testutils.MustExec(t, a.DB.Create(&later), "preparing later exam")
	testutils.MustExec(t, a.DB.Create(&sooner), "preparing sooner exam")
	testutils.MustExec(t, a.DB.Create(&other), "preparing other exam")

	req := testutils.MakeReq(server.URL, "GET", "/api/exams", "")
	res := testutils.HTTPAuthDo(t, a.DB, req, alice)

	assert.StatusCodeEquals(t, res, http.StatusOK, "")

	var got []presenters.Exam
	testutils.MustDecodeJSON(t, res, &got)

	assert.Equal(t, len(got), 2, "exam count mismatch")
	assert.Equal(t, got[0].ID, sooner.ID, "first exam mismatch")
	assert.Equal(t, got[1].ID, later.ID, "second exam mismatch")
}

func TestDeleteExam(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		a, server := setupServer(t)
		user := testutils.SetupUserData(a.DB, "alice", "pass1234")
		s1 := testutils.SetupSubject(a.DB, user.ID, "Math", 8, 0, 9, 0)
		exam := database.ExamMode{UserID: user.ID, SubjectID: s1.ID, ExamDate: a.Clock.Now(), IsActive: true}
		testutils.MustExec(t, a.DB.Create(&exam), "preparing exam")

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/exams/%d", exam.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, user)

		assert.StatusCodeEquals(t, res, http.StatusNoContent, "")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.ExamMode{}).Count(&count), "counting exams")
		assert.Equal(t, count, int64(0), "exam count mismatch")
	})

	t.Run("non owner", func(t *testing.T) {
		a, server := setupServer(t)
		alice := testutils.SetupUserData(a.DB, "alice", "pass1234")
		bob := testutils.SetupUserData(a.DB, "bobby", "pass1234")
		s1 := testutils.SetupSubject(a.DB, alice.ID, "Math", 8, 0, 9, 0)
		exam := database.ExamMode{UserID: alice.ID, SubjectID: s1.ID, ExamDate: a.Clock.Now(), IsActive: true}
		testutils.MustExec(t, a.DB.Create(&exam), "preparing exam")

		req := testutils.MakeReq(server.URL, "DELETE", fmt.Sprintf("/api/exams/%d", exam.ID), "")
		res := testutils.HTTPAuthDo(t, a.DB, req, bob)

		assert.StatusCodeEquals(t, res, http.StatusNotFound, "")

		var count int64
		testutils.MustExec(t, a.DB.Model(&database.ExamMode{}).Count(&count), "counting exams")
		assert.Equal(t, count, int64(1), "exam count mismatch")
	})
}
