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

package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/studytrack/studytrack/pkg/clock"
	"github.com/studytrack/studytrack/pkg/server/app"
	"github.com/studytrack/studytrack/pkg/server/config"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
	"gorm.io/gorm"
)

// dbFlags are the flags shared by every command that opens the database
type dbFlags struct {
	configFile string
	dbDriver   string
	dbPath     string
	dbURL      string
}

func addDBFlags(cmd *cobra.Command, f *dbFlags) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&f.configFile, "config", "", "Path to a YAML config file (env: CONFIG_FILE)")
	flags.StringVar(&f.dbDriver, "dbDriver", "", "Database driver: sqlite or postgres (env: DB_DRIVER, default: sqlite)")
	flags.StringVar(&f.dbPath, "dbPath", "", "Path to SQLite database file (env: DBPath, default: $XDG_DATA_HOME/studytrack/server.db)")
	flags.StringVar(&f.dbURL, "dbURL", "", "Postgres connection URL (env: DB_URL)")
}

func initDB(cfg config.Config) (*gorm.DB, error) {
	db := database.Open(database.Params{
		Driver:      cfg.DBDriver,
		Path:        cfg.DBPath,
		URL:         cfg.DBURL,
		BusyTimeout: cfg.BusyTimeout,
	})
	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, errors.Wrap(err, "running migrations")
	}

	return db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}

func initApp(cfg config.Config) (app.App, error) {
	db, err := initDB(cfg)
	if err != nil {
		return app.App{}, err
	}

	return app.App{
		DB:                  db,
		Clock:               clock.New(),
		Location:            cfg.Location,
		SessionTTL:          cfg.SessionTTL,
		DisableRegistration: cfg.DisableRegistration,
	}, nil
}

// setupAppWithDB loads the configuration for the given flags and returns an
// app connected to the database along with a function releasing it
func setupAppWithDB(f dbFlags) (*app.App, func(), error) {
	config.LoadDotenv()

	cfg, err := config.New(config.Params{
		ConfigFile: f.configFile,
		DBDriver:   f.dbDriver,
		DBPath:     f.dbPath,
		DBURL:      f.dbURL,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "loading configuration")
	}

	log.SetLevel(cfg.LogLevel)

	a, err := initApp(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		closeDB(a.DB)
	}

	return &a, cleanup, nil
}
