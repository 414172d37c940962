// SPDX-FileCopyrightText: Copyright 2025 Aaryan Shroff
// SPDX-License-Identifier: MIT

package githubapi

import (
	"fmt"
	"strconv"
	"time"
)

// TimestampFormat is the fixed textual format GitHub uses for
// installation token expiry timestamps.
const TimestampFormat = "2006-01-02T15:04:05Z"

// Timestamp represents a time generated by the GitHub API, in UTC and
// second precision. Token expiry timestamps always use [TimestampFormat].
type Timestamp struct {
	time.Time
}

// MarshalJSON implements [encoding/json.Marshaler].
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, t.UTC().Format(TimestampFormat)), nil
}

// UnmarshalJSON implements [encoding/json.Unmarshaler]. The timestamp
// must be a quoted string in [TimestampFormat]. Anything else is an
// error, a token whose expiry cannot be parsed must never be cached.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("githubapi: timestamp is not a string: %s", data)
	}

	v, err := time.Parse(TimestampFormat, s)
	if err != nil {
		return fmt.Errorf("githubapi: invalid timestamp %q: %w", s, err)
	}

	t.Time = v
	return nil
}
