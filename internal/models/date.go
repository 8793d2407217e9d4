package models

import "time"

// DateLayoutISO is the canonical serialization layout for dates (YYYY-MM-DD).
const DateLayoutISO = "2006-01-02"

// Date is a calendar date without a time component. The zero value is the
// explicit "empty" sentinel used for unparsable input; it is never a
// fabricated date.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateFromTime truncates a time.Time to a calendar date.
func DateFromTime(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

// EmptyDate returns the empty sentinel.
func EmptyDate() Date {
	return Date{}
}

// IsEmpty reports whether the date is the empty sentinel.
func (d Date) IsEmpty() bool {
	return d.t.IsZero()
}

// Time returns the underlying time.Time (midnight UTC).
func (d Date) Time() time.Time {
	return d.t
}

// String returns the ISO form (YYYY-MM-DD), or "" for the empty sentinel.
func (d Date) String() string {
	if d.IsEmpty() {
		return ""
	}
	return d.t.Format(DateLayoutISO)
}

// YearMonth returns the first 7 characters of the ISO form (YYYY-MM), used as
// the coarse period key during matching. Empty dates yield "".
func (d Date) YearMonth() string {
	if d.IsEmpty() {
		return ""
	}
	return d.t.Format("2006-01")
}

// Equal reports whether two dates are the same calendar day (or both empty).
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// Before reports whether d is strictly before other. An empty date is never
// before anything.
func (d Date) Before(other Date) bool {
	if d.IsEmpty() || other.IsEmpty() {
		return false
	}
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other. An empty date is never
// after anything.
func (d Date) After(other Date) bool {
	if d.IsEmpty() || other.IsEmpty() {
		return false
	}
	return d.t.After(other.t)
}

// MarshalText implements encoding.TextMarshaler so Date serializes as ISO in
// CSV and JSON output.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Anything that is not a
// strict ISO date becomes the empty sentinel; lenient parsing of heterogeneous
// input belongs to the normalize package, not here.
func (d *Date) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(DateLayoutISO, s)
	if err != nil {
		*d = Date{}
		return nil
	}
	*d = DateFromTime(t)
	return nil
}
