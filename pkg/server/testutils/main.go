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

// Package testutils provides utilities used in tests
package testutils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/helpers"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens a sqlite database at the given path and initializes the schema
func InitDB(dbPath string) *gorm.DB {
	db := database.Open(database.Params{
		Driver:      database.DriverSQLite,
		Path:        dbPath,
		BusyTimeout: 5 * time.Second,
	})
	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		panic(errors.Wrap(err, "running migrations"))
	}

	return db
}

// InitMemoryDB creates an in-memory SQLite database with the schema initialized
func InitMemoryDB(t *testing.T) *gorm.DB {
	dbName, err := helpers.NewMemoryDSN()
	if err != nil {
		t.Fatal(errors.Wrap(err, "naming test database"))
	}
	db, err := gorm.Open(sqlite.Open(dbName), database.NewGormConfig())
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate in-memory database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupUserData creates and returns a new user with the given username and password
// for testing purposes. The email is derived from the username.
func SetupUserData(db *gorm.DB, username, password string) database.User {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(errors.Wrap(err, "Failed to hash password"))
	}

	user := database.User{
		Username:  username,
		Email:     fmt.Sprintf("%s@example.com", username),
		Password:  string(hashedPassword),
		FirstName: "Test",
		LastName:  "User",
	}
	if err := db.Create(&user).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare user"))
	}

	return user
}

// SetupSubject creates and returns a new subject owned by the given user with
// a window from startHour:startMinute to endHour:endMinute
func SetupSubject(db *gorm.DB, userID int, name string, startHour, startMinute, endHour, endMinute int) database.Subject {
	subject := database.Subject{
		UserID:           userID,
		Name:             name,
		Color:            database.DefaultSubjectColor,
		DailyTimeMinutes: 60,
		StartHour:        startHour,
		StartMinute:      startMinute,
		EndHour:          endHour,
		EndMinute:        endMinute,
	}
	if err := db.Create(&subject).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare subject"))
	}

	return subject
}

// SetupTopic creates and returns a new topic under the given subject
func SetupTopic(db *gorm.DB, subjectID int, name string) database.Topic {
	topic := database.Topic{
		SubjectID: subjectID,
		Name:      name,
	}
	if err := db.Create(&topic).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare topic"))
	}

	return topic
}

// SetupStudySession creates and returns an open study session started at the given time
func SetupStudySession(db *gorm.DB, userID, subjectID int, topicID *int, startTime time.Time) database.StudySession {
	session := database.StudySession{
		UserID:    userID,
		SubjectID: subjectID,
		TopicID:   topicID,
		StartTime: startTime,
	}
	if err := db.Create(&session).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare study session"))
	}

	return session
}

func createSession(db *gorm.DB, userID int, ttl time.Duration) (database.Session, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return database.Session{}, errors.Wrap(err, "reading random bits")
	}

	now := time.Now().UTC()
	session := database.Session{
		Key:        base64.URLEncoding.EncodeToString(b),
		UserID:     userID,
		LastUsedAt: now,
		ExpiresAt:  now.Add(ttl),
	}
	if err := db.Create(&session).Error; err != nil {
		return database.Session{}, errors.Wrap(err, "saving session")
	}

	return session, nil
}

// SetupSession creates and returns a new user session
func SetupSession(db *gorm.DB, user database.User) database.Session {
	session, err := createSession(db, user.ID, 24*time.Hour)
	if err != nil {
		panic(errors.Wrap(err, "Failed to prepare session"))
	}

	return session
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// SetReqAuthHeader sets the authorization header in the given request for the given user with a specific DB
func SetReqAuthHeader(t *testing.T, db *gorm.DB, req *http.Request, user database.User) {
	session, err := createSession(db, user.ID, 10*24*time.Hour)
	if err != nil {
		t.Fatal(errors.Wrap(err, "Failed to prepare session"))
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", session.Key))
}

// HTTPAuthDo makes an HTTP request with an appropriate authorization header for a user with a specific DB
func HTTPAuthDo(t *testing.T, db *gorm.DB, req *http.Request, user database.User) *http.Response {
	SetReqAuthHeader(t, db, req, user)

	return HTTPDo(t, req)
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MakeFormReq makes an HTTP request with a urlencoded form body
func MakeFormReq(endpoint, method, path string, data url.Values) *http.Request {
	req := MakeReq(endpoint, method, path, data.Encode())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// MustDecodeJSON decodes the body of the given response into v and closes it
func MustDecodeJSON(t *testing.T, res *http.Response, v interface{}) {
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(errors.Wrap(err, "reading response body"))
	}
	if err := json.Unmarshal(b, v); err != nil {
		t.Fatal(errors.Wrapf(err, "decoding response body %s", string(b)))
	}
}

// GetCookieByName returns a cookie with the given name
func GetCookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	var ret *http.Cookie

	for i := 0; i < len(cookies); i++ {
		if cookies[i].Name == name {
			ret = cookies[i]
			break
		}
	}

	return ret
}

// PayloadWrapper is a wrapper for a payload that can be converted to
// either URL form values or JSON
type PayloadWrapper struct {
	Data interface{}
}

// ToURLValues converts the non-nil pointer fields of the payload to form
// values keyed by their schema tag
func (p PayloadWrapper) ToURLValues() url.Values {
	values := url.Values{}

	el := reflect.ValueOf(p.Data)
	if el.Kind() == reflect.Ptr {
		el = el.Elem()
	}
	iVal := el
	typ := iVal.Type()
	for i := 0; i < iVal.NumField(); i++ {
		fi := typ.Field(i)
		name := fi.Tag.Get("schema")
		if name == "" {
			name = fi.Name
		}

		if !iVal.Field(i).IsNil() {
			values.Set(name, fmt.Sprint(iVal.Field(i).Elem()))
		}
	}

	return values
}

// ToJSON converts the payload to JSON
func (p PayloadWrapper) ToJSON(t *testing.T) string {
	b, err := json.Marshal(p.Data)
	if err != nil {
		t.Fatal(err)
	}

	return string(b)
}

// PayloadType is the encoding of a request body
type PayloadType int

const (
	// PayloadJSON is a JSON request body
	PayloadJSON PayloadType = iota
	// PayloadForm is a urlencoded form request body
	PayloadForm
)

// RunForFormAndJSON runs the given test function once for a JSON body and
// once for a urlencoded form body
func RunForFormAndJSON(t *testing.T, name string, runTest func(t *testing.T, target PayloadType)) {
	t.Run(name+"-json", func(t *testing.T) {
		runTest(t, PayloadJSON)
	})

	t.Run(name+"-form", func(t *testing.T) {
		runTest(t, PayloadForm)
	})
}

// MakePayloadReq makes an HTTP request whose body is the payload in the given encoding
func MakePayloadReq(t *testing.T, endpoint, method, path string, p PayloadWrapper, target PayloadType) *http.Request {
	if target == PayloadForm {
		return MakeFormReq(endpoint, method, path, p.ToURLValues())
	}

	req := MakeReq(endpoint, method, path, p.ToJSON(t))
	req.Header.Set("Content-Type", "application/json")

	return req
}
