package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, serialized as
// "YYYY-MM-DD" in JSON and stored in a DATE column.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "null" || raw == "" {
		return fmt.Errorf("date must not be empty")
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected format YYYY-MM-DD", raw)
	}

	d.Time = parsed
	return nil
}

// After reports whether d is strictly after other, comparing dates only.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(raw string) error {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Date: %w", raw, err)
	}
	d.Time = parsed
	return nil
}
