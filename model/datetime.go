package model

import (
	"fmt"
	"time"
)

// DateTimeLayout is the wire format for timestamps: ISO-8601 local
// date-time without a zone, same on input and output.
const DateTimeLayout = "2006-01-02T15:04:05"

// DateTime marshals as a local date-time string instead of RFC 3339.
type DateTime time.Time

func NewDateTime(t time.Time) DateTime { return DateTime(t) }

func (d DateTime) Time() time.Time { return time.Time(d) }

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("datetime: not a JSON string: %s", s)
	}
	s = s[1 : len(s)-1]
	// Fractional seconds are accepted but not emitted.
	for _, layout := range []string{DateTimeLayout, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateTime(t)
			return nil
		}
	}
	return fmt.Errorf("datetime: cannot parse %q, want %s", s, DateTimeLayout)
}
