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

// Package log writes leveled, structured log lines in JSON to stderr.
package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level names accepted by SetLevel and the LOG_LEVEL setting
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

const (
	fieldKeyLevel         = "level"
	fieldKeyMessage       = "msg"
	fieldKeyError         = "error"
	fieldKeyTimestamp     = "ts"
	fieldKeyUnixTimestamp = "ts_unix"
)

type severity int

const (
	sevDebug severity = iota
	sevInfo
	sevWarn
	sevError
)

var severities = map[string]severity{
	LevelDebug: sevDebug,
	LevelInfo:  sevInfo,
	LevelWarn:  sevWarn,
	LevelError: sevError,
}

// severityOf maps a level name to its severity. Unknown names count as info.
func severityOf(level string) severity {
	if s, ok := severities[level]; ok {
		return s
	}

	return sevInfo
}

// sink is the process-wide destination of log lines. Each line is written
// with a single call while holding mu, so lines of concurrent requests never
// interleave.
type sink struct {
	mu        sync.Mutex
	levelName string
	threshold severity
	out       io.Writer
}

var std = &sink{
	levelName: LevelInfo,
	threshold: sevInfo,
	out:       os.Stderr,
}

// IsValidLevel reports whether the given string names a known level
func IsValidLevel(level string) bool {
	_, ok := severities[level]

	return ok
}

// SetLevel sets the minimum level written. Unknown names behave as info.
func SetLevel(level string) {
	std.mu.Lock()
	defer std.mu.Unlock()

	std.levelName = level
	std.threshold = severityOf(level)
}

// GetLevel returns the level name last given to SetLevel
func GetLevel() string {
	std.mu.Lock()
	defer std.mu.Unlock()

	return std.levelName
}

// SetOutput redirects all log lines to w and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	std.mu.Lock()
	defer std.mu.Unlock()

	prev := std.out
	std.out = w

	return prev
}

func shouldLog(level string) bool {
	std.mu.Lock()
	threshold := std.threshold
	std.mu.Unlock()

	return severityOf(level) >= threshold
}

// Fields represents a set of information to be included in the log
type Fields map[string]interface{}

// Entry is a log line under construction
type Entry struct {
	Fields    Fields
	Timestamp time.Time
}

// WithFields creates a log entry with the given fields
func WithFields(fields Fields) Entry {
	return Entry{
		Fields:    fields,
		Timestamp: time.Now().UTC(),
	}
}

// Debug logs the entry at the debug level
func (e Entry) Debug(msg string) {
	e.write(LevelDebug, msg, nil)
}

// Info logs the entry at the info level
func (e Entry) Info(msg string) {
	e.write(LevelInfo, msg, nil)
}

// Warn logs the entry at the warn level
func (e Entry) Warn(msg string) {
	e.write(LevelWarn, msg, nil)
}

// Error logs the entry at the error level
func (e Entry) Error(msg string) {
	e.write(LevelError, msg, nil)
}

// ErrorWrap logs the entry at the error level with msg annotating err. The
// bare error text is also kept in the "error" field.
func (e Entry) ErrorWrap(err error, msg string) {
	e.write(LevelError, fmt.Sprintf("%s: %v", msg, err), err)
}

// record assembles the JSON object of a line. Error values in fields are
// rendered as their message, since encoding/json would print them as {}.
func (e Entry) record(level, msg string, err error) map[string]interface{} {
	rec := make(map[string]interface{}, len(e.Fields)+5)

	for k, v := range e.Fields {
		if fe, ok := v.(error); ok {
			rec[k] = fe.Error()
			continue
		}
		rec[k] = v
	}

	if err != nil {
		rec[fieldKeyError] = err.Error()
	}
	rec[fieldKeyLevel] = level
	rec[fieldKeyMessage] = msg
	rec[fieldKeyTimestamp] = e.Timestamp
	rec[fieldKeyUnixTimestamp] = e.Timestamp.Unix()

	return rec
}

func (e Entry) write(level, msg string, err error) {
	if !shouldLog(level) {
		return
	}

	var buf bytes.Buffer
	if encErr := json.NewEncoder(&buf).Encode(e.record(level, msg, err)); encErr != nil {
		fmt.Fprintf(os.Stderr, "encoding log line: %v\n", encErr)
		return
	}

	std.mu.Lock()
	defer std.mu.Unlock()

	if _, wErr := std.out.Write(buf.Bytes()); wErr != nil {
		fmt.Fprintf(os.Stderr, "writing log line: %v\n", wErr)
	}
}

// Debug logs a debug message without additional fields
func Debug(msg string) {
	WithFields(nil).Debug(msg)
}

// Info logs an info message without additional fields
func Info(msg string) {
	WithFields(nil).Info(msg)
}

// Warn logs a warning message without additional fields
func Warn(msg string) {
	WithFields(nil).Warn(msg)
}

// Error logs an error message without additional fields
func Error(msg string) {
	WithFields(nil).Error(msg)
}

// ErrorWrap logs err annotated by msg without additional fields
func ErrorWrap(err error, msg string) {
	WithFields(nil).ErrorWrap(err, msg)
}
