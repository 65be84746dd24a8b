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

const (
	// NoteSubjectFinished is the note stamped on a zero-duration session that
	// records a subject being finished without an open session
	NoteSubjectFinished = "subject_finished"
	// NoteFinishedSuffix is appended to the notes of an open session closed by
	// finishing its subject
	NoteFinishedSuffix = " finished"
)

const (
	// DefaultSubjectColor is the color given to subjects created without one
	DefaultSubjectColor = "#007bff"
	// DefaultBreakDurationMinutes is the break length for new users
	DefaultBreakDurationMinutes = 30
	// DefaultReminderSoundSeconds is the reminder playback length for new users
	DefaultReminderSoundSeconds = 10
)
