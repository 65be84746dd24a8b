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

// Package cmd implements the studytrack-server command line
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd returns the root command with every subcommand registered
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "studytrack-server",
		Short:         "Studytrack server - track what you study and when",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(newStartCmd())
	root.AddCommand(newUserCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the command line with the process arguments
func Execute() error {
	return NewRootCmd().Execute()
}
