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

package schedule

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Int is an integer decoded leniently from client input. It accepts JSON
// numbers and numeric strings. Anything else, including null, leaves it
// invalid instead of failing the whole request.
type Int struct {
	Value int
	Valid bool
}

// NewInt returns a valid Int holding v
func NewInt(v int) Int {
	return Int{Value: v, Valid: true}
}

// Or returns the value if valid and def otherwise
func (i Int) Or(def int) int {
	if !i.Valid {
		return def
	}

	return i.Value
}

// inRange reports whether v fits in 32 bits. Larger values are treated as
// invalid so that hour and minute arithmetic cannot overflow.
func inRange(v float64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func parseInt(s string) Int {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return Int{}
	}

	return NewInt(int(v))
}

// UnmarshalJSON implements json.Unmarshaler
func (i *Int) UnmarshalJSON(b []byte) error {
	*i = Int{}

	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil
		}

		*i = parseInt(s)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || !inRange(f) {
		return nil
	}

	*i = NewInt(int(f))
	return nil
}

// MarshalJSON implements json.Marshaler
func (i Int) MarshalJSON() ([]byte, error) {
	if !i.Valid {
		return []byte("null"), nil
	}

	return []byte(strconv.Itoa(i.Value)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so that form decoders
// treat the field the same way
func (i *Int) UnmarshalText(b []byte) error {
	*i = parseInt(string(b))
	return nil
}
