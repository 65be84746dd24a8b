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
	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/schedule"
)

// Stats are the dashboard figures over the active subjects of a user
type Stats struct {
	ActiveSubjects        int
	FinishedToday         int
	Pending               int
	TotalScheduledMinutes int
	FinishedSubjectIDs    []int
}

// DashboardStats computes the dashboard figures for the user. A subject counts
// as finished today when its finished_at falls on the current date in the
// app's location.
func (a *App) DashboardStats(userID int) (Stats, error) {
	var subjects []database.Subject
	if err := a.DB.Where("user_id = ? AND is_active = ?", userID, true).Order("id ASC").Find(&subjects).Error; err != nil {
		return Stats{}, errors.Wrap(err, "finding subjects")
	}

	now := a.now()
	loc := a.location()

	stats := Stats{
		ActiveSubjects:     len(subjects),
		FinishedSubjectIDs: []int{},
	}
	for _, s := range subjects {
		stats.TotalScheduledMinutes += schedule.MinutesBetween(s.StartHour, s.StartMinute, s.EndHour, s.EndMinute)

		if schedule.FinishedOn(s.FinishedAt, now, loc) {
			stats.FinishedToday++
			stats.FinishedSubjectIDs = append(stats.FinishedSubjectIDs, s.ID)
		}
	}

	stats.Pending = stats.ActiveSubjects - stats.FinishedToday
	if stats.Pending < 0 {
		stats.Pending = 0
	}

	return stats, nil
}
