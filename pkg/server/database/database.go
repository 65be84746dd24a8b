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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite is the name of the sqlite driver
	DriverSQLite = "sqlite"
	// DriverPostgres is the name of the postgres driver
	DriverPostgres = "postgres"
)

// Params are the parameters for opening a database connection
type Params struct {
	Driver      string
	Path        string
	URL         string
	BusyTimeout time.Duration
}

// InitSchema migrates database schema to reflect the latest model definition
func InitSchema(db *gorm.DB) {
	if err := db.AutoMigrate(
		&User{},
		&Subject{},
		&Topic{},
		&StudySession{},
		&ExamMode{},
		&Session{},
	); err != nil {
		panic(err)
	}
}

// getDBLogLevel maps the application log level to the gorm log level.
// Only debug surfaces individual queries.
func getDBLogLevel(level string) logger.LogLevel {
	switch level {
	case log.LevelDebug:
		return logger.Info
	case log.LevelWarn:
		return logger.Warn
	case log.LevelError:
		return logger.Error
	default:
		return logger.Silent
	}
}

// NewGormConfig returns the gorm configuration shared by every connection
func NewGormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(getDBLogLevel(log.GetLevel())),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// SQLiteDSN builds a sqlite connection string with the pragmas the store
// relies on: foreign keys, WAL journaling and a busy timeout so that
// concurrent writers wait for the lock instead of failing.
func SQLiteDSN(path string, busyTimeout time.Duration) string {
	return fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=%d",
		path, busyTimeout.Milliseconds())
}

func getDialector(p Params) (gorm.Dialector, error) {
	switch p.Driver {
	case DriverSQLite, "":
		// Create directory if it doesn't exist
		dir := filepath.Dir(p.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "creating database directory at %s", dir)
		}

		return sqlite.Open(SQLiteDSN(p.Path, p.BusyTimeout)), nil
	case DriverPostgres:
		return postgres.Open(p.URL), nil
	default:
		return nil, errors.Errorf("unsupported database driver '%s'", p.Driver)
	}
}

// Open initializes the database connection
func Open(p Params) *gorm.DB {
	dialector, err := getDialector(p)
	if err != nil {
		panic(errors.Wrap(err, "preparing database dialector"))
	}

	db, err := gorm.Open(dialector, NewGormConfig())
	if err != nil {
		panic(errors.Wrap(err, "opening database connection"))
	}

	return db
}

// IsSQLite reports whether the given connection is backed by sqlite
func IsSQLite(db *gorm.DB) bool {
	return db.Dialector.Name() == DriverSQLite
}
