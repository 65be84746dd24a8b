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

package app

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/assert"
	"github.com/studytrack/studytrack/pkg/clock"
	"github.com/studytrack/studytrack/pkg/server/testutils"
)

func TestDashboardStats(t *testing.T) {
	t.Run("nothing finished", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		user := testutils.SetupUserData(db, "alice", "pass1234")
		testutils.SetupSubject(db, user.ID, "Math", 8, 0, 9, 30)
		testutils.SetupSubject(db, user.ID, "Physics", 14, 0, 15, 0)

		a := NewTest()
		a.DB = db

		stats, err := a.DashboardStats(user.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, stats.ActiveSubjects, 2, "active mismatch")
		assert.Equal(t, stats.FinishedToday, 0, "finished mismatch")
		assert.Equal(t, stats.Pending, 2, "pending mismatch")
		assert.Equal(t, stats.TotalScheduledMinutes, 150, "scheduled minutes mismatch")
		assert.DeepEqual(t, stats.FinishedSubjectIDs, []int{}, "finished ids mismatch")
	})

	t.Run("finished today and earlier", func(t *testing.T) {
		db := testutils.InitMemoryDB(t)
		user := testutils.SetupUserData(db, "alice", "pass1234")
		bob := testutils.SetupUserData(db, "bobby", "pass1234")

		c := clock.NewMock()
		c.SetNow(time.Date(2025, 3, 2, 15, 0, 0, 0, time.UTC))

		a := NewTest()
		a.DB = db
		a.Clock = c

		math := testutils.SetupSubject(db, user.ID, "Math", 8, 0, 9, 30)
		physics := testutils.SetupSubject(db, user.ID, "Physics", 14, 0, 15, 0)
		// end before start schedules nothing
		testutils.SetupSubject(db, user.ID, "Night", 22, 0, 6, 0)
		inactive := testutils.SetupSubject(db, user.ID, "Old", 8, 0, 12, 0)
		testutils.MustExec(t, db.Model(&inactive).Update("is_active", false), "deactivating subject")
		testutils.SetupSubject(db, bob.ID, "History", 8, 0, 18, 0)

		if _, err := a.CompleteSubject(user.ID, math.ID); err != nil {
			t.Fatal(errors.Wrap(err, "completing math"))
		}
		yesterday := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)
		testutils.MustExec(t, db.Model(&physics).Update("finished_at", yesterday), "finishing physics yesterday")

		stats, err := a.DashboardStats(user.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}

		assert.Equal(t, stats.ActiveSubjects, 3, "active mismatch")
		assert.Equal(t, stats.FinishedToday, 1, "finished mismatch")
		assert.Equal(t, stats.Pending, 2, "pending mismatch")
		assert.Equal(t, stats.TotalScheduledMinutes, 150, "scheduled minutes mismatch")
		assert.DeepEqual(t, stats.FinishedSubjectIDs, []int{math.ID}, "finished ids mismatch")

		// the finished marker resets once the date changes
		c.SetNow(time.Date(2025, 3, 3, 0, 0, 1, 0, time.UTC))

		stats, err = a.DashboardStats(user.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}
		assert.Equal(t, stats.FinishedToday, 0, "finished after midnight mismatch")
		assert.Equal(t, stats.Pending, 3, "pending after midnight mismatch")
	})

	t.Run("today follows the configured location", func(t *testing.T) {
		seoul, err := time.LoadLocation("Asia/Seoul")
		if err != nil {
			t.Skip("tzdata unavailable")
		}

		db := testutils.InitMemoryDB(t)
		user := testutils.SetupUserData(db, "alice", "pass1234")
		math := testutils.SetupSubject(db, user.ID, "Math", 8, 0, 9, 0)

		c := clock.NewMock()
		a := NewTest()
		a.DB = db
		a.Clock = c
		a.Location = seoul

		// 2025-03-01 23:30 UTC is 2025-03-02 08:30 in Seoul
		c.SetNow(time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC))
		if _, err := a.CompleteSubject(user.ID, math.ID); err != nil {
			t.Fatal(errors.Wrap(err, "completing"))
		}

		// 2025-03-02 01:00 UTC is still 2025-03-02 in Seoul
		c.SetNow(time.Date(2025, 3, 2, 1, 0, 0, 0, time.UTC))

		stats, err := a.DashboardStats(user.ID)
		if err != nil {
			t.Fatal(errors.Wrap(err, "executing"))
		}
		assert.Equal(t, stats.FinishedToday, 1, "finished mismatch")
	})
}
