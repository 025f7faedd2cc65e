// Package types implements special types for the portfolio backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"
)

// Month identifies one calendar month. It is the universal time axis for
// all financial rollups: map key, database column and JSON value alike.
//
// The zero value is not a valid month. Month is comparable with ==, which
// makes it safe to use as a map key.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month{Year: year, Month: month}
}

// ParseMonth parses a "YYYY-MM" string and returns the Month value it represents.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, err
	}

	return MonthOf(t), nil
}

// String returns the month formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Time returns the first of the month, midnight UTC.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Valid reports whether the month is a real calendar month.
func (m Month) Valid() bool {
	return m.Month >= time.January && m.Month <= time.December
}

// AddMonths adds the specified amount of months, which may be negative.
// Overflow is normalized, so adding one month to 2025-12 yields 2026-01.
func (m Month) AddMonths(months int) Month {
	return MonthOf(time.Date(m.Year, m.Month+time.Month(months), 1, 0, 0, 0, 0, time.UTC))
}

// Before reports whether the month m is before n.
func (m Month) Before(n Month) bool {
	return m.Year < n.Year || (m.Year == n.Year && m.Month < n.Month)
}

// After reports whether the month m is after n.
func (m Month) After(n Month) bool {
	return n.Before(m)
}

// Contains reports whether the time instant is in the month.
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// MarshalText implements the encoding.TextMarshaler interface.
// Months therefore marshal to "YYYY-MM" in JSON, including as map keys.
// The zero value marshals to the empty string.
func (m Month) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return []byte(""), nil
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// It accepts "YYYY-MM" as well as full dates and RFC3339 timestamps,
// of which everything except the year and month is ignored.
func (m *Month) UnmarshalText(data []byte) error {
	value := string(data)
	if value == "" || value == "null" {
		return nil
	}

	for _, pattern := range []string{"2006-01", "2006-01-02", time.RFC3339} {
		t, err := time.Parse(pattern, value)
		if err == nil {
			*m = MonthOf(t)
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as a month", value)
}

// Scan reads the value from the database.
func (m *Month) Scan(value any) error {
	nullTime := &sql.NullTime{}
	err := nullTime.Scan(value)
	if err != nil {
		return err
	}

	if !nullTime.Valid || nullTime.Time.IsZero() {
		*m = Month{}
		return nil
	}

	*m = MonthOf(nullTime.Time)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}

	return m.Time(), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Month) GormDataType() string {
	return "date"
}
