package resume

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the accepted layouts for date-like fields, tried in order.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

// presentToken marks an ongoing position in extracted data. It hydrates to
// an absent end date.
const presentToken = "present"

// Date is a calendar date without a time component. It marshals as
// "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// MarshalJSON renders the date as a quoted "YYYY-MM-DD" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

// UnmarshalJSON parses a quoted date string in any accepted layout.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := parseDateString(s)
	if err != nil {
		return err
	}
	d.Time = parsed
	return nil
}

// ParseDate converts a date-like string from an extraction result into a
// date. Empty strings and the token "present" (case-insensitive) yield nil:
// the field is absent, not zero.
func ParseDate(s string) (*Date, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, presentToken) {
		return nil, nil
	}
	parsed, err := parseDateString(s)
	if err != nil {
		return nil, err
	}
	return &Date{parsed}, nil
}

func parseDateString(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// Extraction sometimes yields full timestamps; accept those too.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
