package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CivilDate is a calendar date without a time-of-day or timezone. All
// date-only comparisons in the scheduler (vacations, extra capacity,
// day grouping) go through this type rather than raw instants, so a
// booking near midnight can never land on the wrong day.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

const civilDateLayout = "2006-01-02"

// CivilDateOf extracts the calendar date of t in t's own location.
func CivilDateOf(t time.Time) CivilDate {
	year, month, day := t.Date()
	return CivilDate{Year: year, Month: month, Day: day}
}

// ParseCivilDate parses a YYYY-MM-DD value.
func ParseCivilDate(value string) (CivilDate, error) {
	t, err := time.Parse(civilDateLayout, value)
	if err != nil {
		return CivilDate{}, fmt.Errorf("parse civil date %q: %w", value, err)
	}
	return CivilDateOf(t), nil
}

// In returns the midnight instant of the date in the given location.
func (d CivilDate) In(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At returns the instant at the given minute-of-day in the given location.
func (d CivilDate) At(minute int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, minute/60, minute%60, 0, 0, loc)
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is the zero value.
func (d CivilDate) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Weekday returns the day of week, 0=Sunday through 6=Saturday.
func (d CivilDate) Weekday() int {
	return int(d.In(time.UTC).Weekday())
}

// AddDays returns the date n days later (or earlier for negative n).
func (d CivilDate) AddDays(n int) CivilDate {
	return CivilDateOf(d.In(time.UTC).AddDate(0, 0, n))
}

// Before reports whether d is strictly earlier than other.
func (d CivilDate) Before(other CivilDate) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d CivilDate) After(other CivilDate) bool {
	return d.Compare(other) > 0
}

// Compare returns -1, 0 or 1 ordering d against other.
func (d CivilDate) Compare(other CivilDate) int {
	switch {
	case d.Year != other.Year:
		return compareInt(d.Year, other.Year)
	case d.Month != other.Month:
		return compareInt(int(d.Month), int(other.Month))
	default:
		return compareInt(d.Day, other.Day)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes the date as "YYYY-MM-DD".
func (d CivilDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string.
func (d *CivilDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCivilDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer for DATE columns.
func (d CivilDate) Value() (driver.Value, error) {
	return d.In(time.UTC), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *CivilDate) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = CivilDateOf(v)
		return nil
	case []byte:
		parsed, err := ParseCivilDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseCivilDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CivilDate", src)
	}
}
