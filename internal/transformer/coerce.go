// Package transformer cleans and type-coerces raw CSV rows into typed
// records ready for loading.
//
// Coercion policy: bad data becomes null, not a crash. The two exceptions
// are numeric fields (a non-numeric string is a hard error for that field)
// and timestamps (an unparsable value yields a ParseTimeError); both are
// escalated to the row level, where the whole row is dropped.
package transformer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// noneToken is the literal the upstream export writes for absent values.
const noneToken = "None"

// timeLayouts are tried in order by NullableTime.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimeError reports a timestamp value that could not be parsed with
// any known layout.
type ParseTimeError struct {
	Value string
}

func (e *ParseTimeError) Error() string {
	return fmt.Sprintf("cannot parse timestamp %q", e.Value)
}

// NullableString coerces a raw field to a nullable string. Empty values and
// the literal "None" become nil; anything else passes through unchanged,
// with no trimming.
func NullableString(s string) *string {
	if s == "" || s == noneToken {
		return nil
	}
	return &s
}

// NullableBool coerces a raw field to a tri-state boolean. Exactly "True"
// is true and exactly "False" is false; any other value, including case
// variants and garbage, is nil. Never fails.
func NullableBool(s string) *bool {
	switch s {
	case "True":
		v := true
		return &v
	case "False":
		v := false
		return &v
	default:
		return nil
	}
}

// NullableInt coerces a raw field to a nullable integer. Empty values and
// the literal "None" are nil; any other non-numeric value is a hard error
// the caller must escalate to row rejection.
func NullableInt(s string) (*int, error) {
	if s == "" || s == noneToken {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("cannot parse integer %q: %w", s, err)
	}
	return &v, nil
}

// NullableID is NullableInt with the ID sentinel convention: a value of
// exactly "0" means "unknown" in the source system and coerces to nil,
// distinct from a genuine parse failure.
func NullableID(s string) (*int, error) {
	if s == "0" {
		return nil, nil
	}
	return NullableInt(s)
}

// NullableTime coerces a raw field to a nullable timestamp. Empty,
// whitespace-only, and "None" values are nil. Anything else must parse with
// one of the known layouts; otherwise a ParseTimeError is returned and the
// caller decides record-level accept/reject.
func NullableTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" || s == noneToken {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, &ParseTimeError{Value: s}
}
