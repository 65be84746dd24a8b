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
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"github.com/studytrack/studytrack/pkg/server/database"
	"github.com/studytrack/studytrack/pkg/server/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	usernameMinLength = 4
	usernameMaxLength = 20
	passwordMinLength = 6
	nameMaxLength     = 64
)

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < usernameMinLength || n > usernameMaxLength {
		return ErrUsernameLength
	}

	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLength {
		return ErrPasswordTooShort
	}

	return nil
}

func validatePersonName(name string, errEmpty error) error {
	if name == "" || utf8.RuneCountInString(name) > nameMaxLength {
		return errEmpty
	}

	return nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}

	return string(hashed), nil
}

// getUser loads the active or inactive user of the given id
func getUser(db *gorm.DB, userID int) (database.User, error) {
	var user database.User
	err := db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, errors.Wrap(err, "finding user")
	}

	return user, nil
}

// TouchLastLoginAt updates the last login timestamp
func (a *App) TouchLastLoginAt(user database.User, tx *gorm.DB) error {
	t := a.now()
	if err := tx.Model(&user).Update("last_login_at", &t).Error; err != nil {
		return errors.Wrap(err, "updating last_login_at")
	}

	return nil
}

// Register creates a user. Uniqueness of username and email is case sensitive.
func (a *App) Register(username, email, firstName, lastName, password string) (database.User, error) {
	email = strings.TrimSpace(email)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if err := validateUsername(username); err != nil {
		return database.User{}, err
	}
	if err := validateEmail(email); err != nil {
		return database.User{}, err
	}
	if err := validatePersonName(firstName, ErrFirstNameRequired); err != nil {
		return database.User{}, err
	}
	if err := validatePersonName(lastName, ErrLastNameRequired); err != nil {
		return database.User{}, err
	}
	if err := validatePassword(password); err != nil {
		return database.User{}, err
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return database.User{}, err
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Model(&database.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, errors.Wrap(err, "counting username")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateUsername
	}

	if err := tx.Model(&database.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		tx.Rollback()
		return database.User{}, errors.Wrap(err, "counting email")
	}
	if count > 0 {
		tx.Rollback()
		return database.User{}, ErrDuplicateEmail
	}

	user := database.User{
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return database.User{}, ErrDuplicateAccount
		}

		return database.User{}, errors.Wrap(err, "saving user")
	}

	if err := tx.Commit().Error; err != nil {
		return database.User{}, errors.Wrap(err, "committing transaction")
	}

	return user, nil
}

// Authenticate authenticates a user. Unknown usernames, inactive users and wrong
// passwords all fail with ErrLoginInvalid.
func (a *App) Authenticate(username, password string) (database.User, error) {
	var user database.User
	err := a.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrLoginInvalid
	} else if err != nil {
		return database.User{}, errors.Wrap(err, "finding user")
	}

	if !user.IsActive {
		return database.User{}, ErrLoginInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return database.User{}, ErrLoginInvalid
	}

	return user, nil
}

// SignIn signs in a user
func (a *App) SignIn(user database.User) (database.Session, error) {
	if err := a.TouchLastLoginAt(user, a.DB); err != nil {
		log.ErrorWrap(err, "touching login timestamp")
	}

	session, err := a.CreateSession(user.ID)
	if err != nil {
		return database.Session{}, errors.Wrap(err, "creating session")
	}

	return session, nil
}

// GetUserByID returns the user of the given id
func (a *App) GetUserByID(userID int) (database.User, error) {
	return getUser(a.DB, userID)
}

// GetUserByUsername returns the user with the given username
func (a *App) GetUserByUsername(username string) (database.User, error) {
	var user database.User
	err := a.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, ErrNotFound
	} else if err != nil {
		return database.User{}, errors.Wrap(err, "finding user")
	}

	return user, nil
}

// UpdateUserPassword validates and sets a new password for the given user
// using the given connection, which may be a transaction
func (a *App) UpdateUserPassword(db *gorm.DB, user database.User, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		return err
	}

	if err := db.Model(&database.User{}).Where("id = ?", user.ID).Update("password", hashedPassword).Error; err != nil {
		return errors.Wrap(err, "updating password")
	}

	return nil
}

// UpdatePassword changes the password of a signed in user after checking the
// current one, and signs out every session but the current one
func (a *App) UpdatePassword(userID int, oldPassword, newPassword, currentSessionKey string) error {
	tx := a.DB.Begin()

	user, err := getUser(tx, userID)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		tx.Rollback()
		return ErrInvalidPassword
	}

	if err := a.UpdateUserPassword(tx, user, newPassword); err != nil {
		tx.Rollback()
		return err
	}

	if err := a.DeleteOtherSessions(tx, user.ID, currentSessionKey); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}

// RemoveUser deletes the user with the given username together with
// everything the user owns
func (a *App) RemoveUser(username string) error {
	tx := a.DB.Begin()

	var user database.User
	err := tx.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return ErrNotFound
	} else if err != nil {
		tx.Rollback()
		return errors.Wrap(err, "finding user")
	}

	subjectIDs := tx.Model(&database.Subject{}).Select("id").Where("user_id = ?", user.ID)

	if err := tx.Where("user_id = ?", user.ID).Delete(&database.StudySession{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting study sessions")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.ExamMode{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting exams")
	}
	if err := tx.Where("subject_id IN (?)", subjectIDs).Delete(&database.Topic{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting topics")
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&database.Subject{}).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting subjects")
	}
	if err := a.DeleteUserSessions(tx, user.ID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return errors.Wrap(err, "deleting user")
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "committing transaction")
	}

	return nil
}
