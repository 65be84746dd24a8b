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
	"io/fs"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/studytrack/studytrack/pkg/server/database/migrations"
	"github.com/studytrack/studytrack/pkg/server/log"
	"gorm.io/gorm"
)

// MigrationTableName is the table in which applied migrations are recorded
const MigrationTableName = "migrations"

// validateMigrationFilename checks if filename follows format: NNN-description.sql
func validateMigrationFilename(name string) error {
	if !strings.HasSuffix(name, ".sql") {
		return errors.Errorf("invalid migration filename: must end with .sql")
	}

	name = strings.TrimSuffix(name, ".sql")
	parts := strings.SplitN(name, "-", 2)
	if len(parts) != 2 {
		return errors.Errorf("invalid migration filename: must be NNN-description.sql")
	}

	version, description := parts[0], parts[1]

	if len(version) != 3 {
		return errors.Errorf("invalid migration filename: version must be 3 digits, got %s", version)
	}
	for _, c := range version {
		if c < '0' || c > '9' {
			return errors.Errorf("invalid migration filename: version must be numeric, got %s", version)
		}
	}

	if description == "" {
		return errors.Errorf("invalid migration filename: description is required")
	}

	return nil
}

// checkMigrationFiles validates names and contents of the migration files
// before they are handed to the migrator
func checkMigrationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "reading migration directory")
	}

	var filenames []string
	seen := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, ".go") {
			continue
		}

		if err := validateMigrationFilename(name); err != nil {
			return nil, err
		}

		version := name[:3]
		if existing, found := seen[version]; found {
			return nil, errors.Errorf("duplicate migration version %s: %s and %s", version, existing, name)
		}
		seen[version] = name

		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Wrapf(err, "reading migration file %s", name)
		}
		if len(strings.TrimSpace(string(b))) == 0 {
			return nil, errors.Errorf("migration file %s is empty", name)
		}

		filenames = append(filenames, name)
	}

	return filenames, nil
}

// migrationDialect returns the sql-migrate dialect name for the connection
func migrationDialect(db *gorm.DB) string {
	if IsSQLite(db) {
		return "sqlite3"
	}

	return "postgres"
}

// Migrate runs the migrations using the embedded migration files
func Migrate(db *gorm.DB) error {
	return runMigrations(db, migrations.Files)
}

// runMigrations applies the pending migrations found in the given filesystem
func runMigrations(db *gorm.DB, fsys fs.FS) error {
	filenames, err := checkMigrationFiles(fsys)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"files": filenames,
	}).Debug("Database migration files.")

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "getting underlying connection")
	}

	set := migrate.MigrationSet{TableName: MigrationTableName}
	source := migrate.HttpFileSystemMigrationSource{FileSystem: http.FS(fsys)}

	n, err := set.Exec(sqlDB, migrationDialect(db), source, migrate.Up)
	if err != nil {
		return errors.Wrap(err, "applying migrations")
	}

	log.WithFields(log.Fields{
		"applied": n,
	}).Info("Migrate success.")

	return nil
}
