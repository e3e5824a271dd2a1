package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ClockMinute is a time of day expressed as minutes from midnight. It
// serialises as "HH:MM" on the wire and as an integer in the database.
type ClockMinute int

// ParseClock parses an "HH:MM" value into minutes from midnight.
func ParseClock(value string) (ClockMinute, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", value, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", value)
	}
	return ClockMinute(hours*60 + minutes), nil
}

func (m ClockMinute) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// Minutes returns the raw minute count.
func (m ClockMinute) Minutes() int {
	return int(m)
}

// MarshalJSON encodes the minute as "HH:MM".
func (m ClockMinute) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes an "HH:MM" string.
func (m *ClockMinute) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer, storing the minute count.
func (m ClockMinute) Value() (driver.Value, error) {
	return int64(m), nil
}

// Scan implements sql.Scanner.
func (m *ClockMinute) Scan(src interface{}) error {
	switch v := src.(type) {
	case int64:
		*m = ClockMinute(v)
		return nil
	case []byte:
		parsed, err := strconv.Atoi(string(v))
		if err != nil {
			return err
		}
		*m = ClockMinute(parsed)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ClockMinute", src)
	}
}
