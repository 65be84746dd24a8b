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
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/studytrack/studytrack/pkg/prompt"
)

func newUserCmd() *cobra.Command {
	var f dbFlags

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	addDBFlags(cmd, &f)

	cmd.AddCommand(newUserCreateCmd(&f))
	cmd.AddCommand(newUserRemoveCmd(&f))
	cmd.AddCommand(newUserResetPasswordCmd(&f))

	return cmd
}

func newUserCreateCmd(f *dbFlags) *cobra.Command {
	var username, email, firstName, lastName, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setupAppWithDB(*f)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := a.Register(username, email, firstName, lastName, password)
			if err != nil {
				return errors.Wrap(err, "creating user")
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "User created successfully")
			printField(w, "ID", fmt.Sprintf("%d", user.ID))
			printField(w, "Username", user.Username)
			printField(w, "Email", user.Email)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&username, "username", "", "Username, 4 to 20 characters (required)")
	flags.StringVar(&email, "email", "", "User email address (required)")
	flags.StringVar(&firstName, "firstName", "", "First name (required)")
	flags.StringVar(&lastName, "lastName", "", "Last name (required)")
	flags.StringVar(&password, "password", "", "User password (required)")
	for _, name := range []string{"username", "email", "firstName", "lastName", "password"} {
		cmd.MarkFlagRequired(name)
	}

	return cmd
}

func newUserRemoveCmd(f *dbFlags) *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a user and everything the user owns",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setupAppWithDB(*f)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := a.GetUserByUsername(username); err != nil {
				return errors.Wrapf(err, "finding user '%s'", username)
			}

			w := cmd.OutOrStdout()

			question := fmt.Sprintf("Remove user %s with all subjects, topics, study sessions and exams?", username)
			ok, err := prompt.Confirm(cmd.InOrStdin(), w, question, false)
			if err != nil {
				return errors.Wrap(err, "getting confirmation")
			}
			if !ok {
				printWarn(w, "Aborted by user")
				return nil
			}

			if err := a.RemoveUser(username); err != nil {
				return errors.Wrap(err, "removing user")
			}

			printSuccess(w, "User removed successfully")
			printField(w, "Username", username)

			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username of the user to remove (required)")
	cmd.MarkFlagRequired("username")

	return cmd
}

func newUserResetPasswordCmd(f *dbFlags) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Reset the password of a user and sign out all of the user's sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, cleanup, err := setupAppWithDB(*f)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := a.GetUserByUsername(username)
			if err != nil {
				return errors.Wrapf(err, "finding user '%s'", username)
			}

			tx := a.DB.Begin()
			if err := a.UpdateUserPassword(tx, user, password); err != nil {
				tx.Rollback()
				return errors.Wrap(err, "updating password")
			}
			if err := a.DeleteUserSessions(tx, user.ID); err != nil {
				tx.Rollback()
				return err
			}
			if err := tx.Commit().Error; err != nil {
				return errors.Wrap(err, "committing transaction")
			}

			w := cmd.OutOrStdout()
			printSuccess(w, "Password reset successfully")
			printField(w, "Username", username)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&username, "username", "", "Username of the user (required)")
	flags.StringVar(&password, "password", "", "New password (required)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}
