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

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/dirs"
	"github.com/studytrack/studytrack/pkg/server/log"
	"gopkg.in/yaml.v2"
)

const (
	// AppEnvProduction represents an app environment for production.
	AppEnvProduction string = "PRODUCTION"
	// AppEnvTest represents an app environment for tests.
	AppEnvTest string = "TEST"
	// DefaultDBDir is the default directory name for the data
	DefaultDBDir = "studytrack"
	// DefaultDBFilename is the default database filename
	DefaultDBFilename = "server.db"

	// DBDriverSQLite selects the embedded sqlite store
	DBDriverSQLite = "sqlite"
	// DBDriverPostgres selects a postgres server
	DBDriverPostgres = "postgres"
)

var (
	// DefaultDBPath is the default path to the database file
	DefaultDBPath = filepath.Join(dirs.DataHome, DefaultDBDir, DefaultDBFilename)
	// DefaultConfigPath is the config file read when none is given and it exists
	DefaultConfigPath = filepath.Join(dirs.ConfigHome, DefaultDBDir, "server.yaml")
)

var (
	// ErrDBMissingPath is an error for an incomplete configuration missing the database path
	ErrDBMissingPath = errors.New("DB Path is empty")
	// ErrDBMissingURL is an error for a postgres configuration without a connection url
	ErrDBMissingURL = errors.New("DB URL is empty")
	// ErrDBDriverInvalid is an error for an unknown database driver
	ErrDBDriverInvalid = errors.New("Invalid DB driver")
	// ErrPortInvalid is an error for an incomplete configuration with invalid port
	ErrPortInvalid = errors.New("Invalid Port")
	// ErrTimezoneInvalid is an error for an unknown timezone name
	ErrTimezoneInvalid = errors.New("Invalid timezone")
	// ErrLogLevelInvalid is an error for an unknown log level
	ErrLogLevelInvalid = errors.New("Invalid log level")
)

// FileConfig is the shape of the optional YAML configuration file. Every
// field is a fallback used only when neither a flag nor an env var is set.
type FileConfig struct {
	AppEnv              string   `yaml:"appEnv"`
	Port                string   `yaml:"port"`
	DBDriver            string   `yaml:"dbDriver"`
	DBPath              string   `yaml:"dbPath"`
	DBURL               string   `yaml:"dbURL"`
	BusyTimeout         string   `yaml:"busyTimeout"`
	LogLevel            string   `yaml:"logLevel"`
	Timezone            string   `yaml:"timezone"`
	SessionTTL          string   `yaml:"sessionTTL"`
	CORSOrigins         []string `yaml:"corsOrigins"`
	DisableRegistration bool     `yaml:"disableRegistration"`
}

// Config is an application configuration
type Config struct {
	AppEnv              string
	Port                string
	DBDriver            string
	DBPath              string
	DBURL               string
	BusyTimeout         time.Duration
	LogLevel            string
	Timezone            string
	Location            *time.Location
	SessionTTL          time.Duration
	CORSOrigins         []string
	DisableRegistration bool
}

// Params are the configuration parameters for creating a new Config
type Params struct {
	ConfigFile          string
	AppEnv              string
	Port                string
	DBDriver            string
	DBPath              string
	DBURL               string
	LogLevel            string
	DisableRegistration bool
}

// LoadDotenv loads a .env file from the working directory into the
// environment. A missing file is not an error.
func LoadDotenv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}

	if err := godotenv.Load(); err != nil {
		log.ErrorWrap(err, "loading .env")
		return
	}

	log.Debug("Loaded .env")
}

// ReadFile parses the YAML configuration file at the given path
func ReadFile(path string) (FileConfig, error) {
	var ret FileConfig

	b, err := os.ReadFile(path)
	if err != nil {
		return ret, errors.Wrap(err, "reading config file")
	}

	if err := yaml.Unmarshal(b, &ret); err != nil {
		return ret, errors.Wrap(err, "unmarshalling config file")
	}

	return ret, nil
}

func readBoolEnv(name string) bool {
	return os.Getenv(name) == "true"
}

// getOrEnv returns value if non-empty, otherwise env var, otherwise the file
// value, otherwise default
func getOrEnv(value, envKey, fileVal, defaultVal string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(envKey); env != "" {
		return env
	}
	if fileVal != "" {
		return fileVal
	}

	return defaultVal
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	// Bare integers are seconds.
	secs, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Errorf("invalid duration '%s'", s)
	}

	return time.Duration(secs) * time.Second, nil
}

func splitList(s string) []string {
	var ret []string

	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			ret = append(ret, v)
		}
	}

	return ret
}

// New constructs and returns a new validated config.
// Empty string params fall back to environment variables, then to the
// config file, then to defaults.
func New(p Params) (Config, error) {
	var fc FileConfig

	configFile := getOrEnv(p.ConfigFile, "CONFIG_FILE", "", "")
	if configFile == "" && fileExists(DefaultConfigPath) {
		configFile = DefaultConfigPath
	}
	if configFile != "" {
		var err error
		if fc, err = ReadFile(configFile); err != nil {
			return Config{}, err
		}
	}

	busyTimeout, err := parseDuration(getOrEnv("", "DB_BUSY_TIMEOUT", fc.BusyTimeout, "30s"))
	if err != nil {
		return Config{}, errors.Wrap(err, "parsing busy timeout")
	}
	sessionTTL, err := parseDuration(getOrEnv("", "SESSION_TTL", fc.SessionTTL, "2400h"))
	if err != nil {
		return Config{}, errors.Wrap(err, "parsing session ttl")
	}

	corsOrigins := splitList(os.Getenv("CORS_ORIGINS"))
	if len(corsOrigins) == 0 {
		corsOrigins = fc.CORSOrigins
	}
	if len(corsOrigins) == 0 {
		corsOrigins = []string{"*"}
	}

	c := Config{
		AppEnv:              getOrEnv(p.AppEnv, "APP_ENV", fc.AppEnv, AppEnvProduction),
		Port:                getOrEnv(p.Port, "PORT", fc.Port, "3001"),
		DBDriver:            getOrEnv(p.DBDriver, "DB_DRIVER", fc.DBDriver, DBDriverSQLite),
		DBPath:              getOrEnv(p.DBPath, "DBPath", fc.DBPath, DefaultDBPath),
		DBURL:               getOrEnv(p.DBURL, "DB_URL", fc.DBURL, ""),
		BusyTimeout:         busyTimeout,
		LogLevel:            getOrEnv(p.LogLevel, "LOG_LEVEL", fc.LogLevel, log.LevelInfo),
		Timezone:            getOrEnv("", "TZ_NAME", fc.Timezone, "Local"),
		SessionTTL:          sessionTTL,
		CORSOrigins:         corsOrigins,
		DisableRegistration: p.DisableRegistration || readBoolEnv("DisableRegistration") || fc.DisableRegistration,
	}

	if err := validate(c); err != nil {
		return Config{}, err
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return Config{}, errors.Wrapf(ErrTimezoneInvalid, "'%s'", c.Timezone)
	}
	c.Location = loc

	return c, nil
}

// IsProd checks if the app environment is configured to be production.
func (c Config) IsProd() bool {
	return c.AppEnv == AppEnvProduction
}

func validate(c Config) error {
	if c.Port == "" {
		return ErrPortInvalid
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return errors.Wrapf(ErrPortInvalid, "'%s'", c.Port)
	}

	switch c.DBDriver {
	case DBDriverSQLite:
		if c.DBPath == "" {
			return ErrDBMissingPath
		}
	case DBDriverPostgres:
		if c.DBURL == "" {
			return ErrDBMissingURL
		}
	default:
		return errors.Wrapf(ErrDBDriverInvalid, "'%s'", c.DBDriver)
	}

	if !log.IsValidLevel(c.LogLevel) {
		return errors.Wrapf(ErrLogLevelInvalid, "'%s'", c.LogLevel)
	}

	return nil
}
