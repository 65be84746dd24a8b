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
	"github.com/pkg/errors"
	"github.com/robfig/cron"
	"github.com/studytrack/studytrack/pkg/server/log"
	"gorm.io/gorm"
)

const (
	checkpointSchedule = "@every 5m"
	vacuumSchedule     = "@daily"
)

// checkpoint folds the write-ahead log back into the main database file
func checkpoint(db *gorm.DB) error {
	if err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
		return errors.Wrap(err, "checkpointing wal")
	}

	return nil
}

// vacuum rebuilds the database file to reclaim free pages
func vacuum(db *gorm.DB) error {
	if err := db.Exec("VACUUM").Error; err != nil {
		return errors.Wrap(err, "vacuuming database")
	}

	return nil
}

// Job is a periodic task run against the database
type Job struct {
	// Name identifies the job in the logs
	Name string
	// Schedule is a cron expression such as "@hourly"
	Schedule string
	Run      func(*gorm.DB) error
}

// sqliteJobs returns the upkeep jobs of a sqlite store
func sqliteJobs() []Job {
	return []Job{
		{Name: "wal_checkpoint", Schedule: checkpointSchedule, Run: checkpoint},
		{Name: "vacuum", Schedule: vacuumSchedule, Run: vacuum},
	}
}

func runJob(db *gorm.DB, job Job) func() {
	return func() {
		if err := job.Run(db); err != nil {
			log.WithFields(log.Fields{
				"job": job.Name,
			}).ErrorWrap(err, "maintenance job failed")
			return
		}

		log.WithFields(log.Fields{
			"job": job.Name,
		}).Debug("maintenance job done")
	}
}

// StartMaintenance schedules the given jobs and returns the running
// scheduler. A sqlite store additionally gets its wal checkpoint and vacuum
// jobs; other drivers manage their own storage.
func StartMaintenance(db *gorm.DB, jobs ...Job) (*cron.Cron, error) {
	if IsSQLite(db) {
		jobs = append(sqliteJobs(), jobs...)
	}

	c := cron.New()
	for _, job := range jobs {
		if err := c.AddFunc(job.Schedule, runJob(db, job)); err != nil {
			return nil, errors.Wrapf(err, "scheduling %s", job.Name)
		}
	}

	c.Start()

	return c, nil
}
