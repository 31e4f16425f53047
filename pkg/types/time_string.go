package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	timeFormat       = "15:04"
	minutesPerDay    = 24 * 60
	minutesPerHour   = 60
)

// EndOfDay is the exclusive right bound of a full working day. It is not
// a valid time of day, only a legal interval end.
const EndOfDay TimeString = "24:00"

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It has no date component, which makes interval math on a single
// calendar day explicit: operations that would cross midnight fail
// instead of silently rolling over.
type TimeString string

// NewTimeString creates a TimeString from the time-of-day part of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes creates a TimeString from minutes since midnight.
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes is outside a single day", ErrInvalidTimeFormat, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/minutesPerHour, minutes%minutesPerHour)), nil
}

// Validate checks that the value is a well-formed "HH:MM" time of day.
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	hours, minutes, ok := t.parse()
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}

	return nil
}

// IsZero returns true if the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Minutes returns the value as minutes since midnight.
// The value must be valid; invalid values return 0.
func (t TimeString) Minutes() int {
	hours, minutes, ok := t.parse()
	if !ok {
		return 0
	}
	return hours*minutesPerHour + minutes
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// Crossing midnight is an error: the scheduling domain never spans days.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	total := t.Minutes() + minutes
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s + %dm leaves the day", ErrCrossesMidnight, string(t), minutes)
	}
	// 24:00 допустим только как правая граница интервала
	if total == minutesPerDay {
		return EndOfDay, nil
	}

	return NewTimeStringFromMinutes(total)
}

// IsBefore reports whether t is strictly earlier than other.
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutesBound() < other.minutesBound()
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutesBound() > other.minutesBound()
}

// Equal reports whether two values denote the same time of day.
func (t TimeString) Equal(other TimeString) bool {
	return t.minutesBound() == other.minutesBound()
}

// String returns the "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// Scan implements sql.Scanner. Postgres TIME columns arrive either as
// time.Time, []byte or string depending on the driver path.
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into TimeString", ErrInvalidTimeFormat, value)
	}
}

// Value implements driver.Valuer. The end-of-day bound round-trips:
// an appointment ending exactly at midnight is persisted as "24:00".
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if t == EndOfDay {
		return string(t), nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

func (t *TimeString) scanString(s string) error {
	// TIME columns come back as "HH:MM:SS"; keep only hours and minutes
	if len(s) > 5 {
		s = s[:5]
	}
	if TimeString(s) == EndOfDay {
		*t = EndOfDay
		return nil
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// minutesBound handles the end-of-day sentinel used as the exclusive
// right bound of intervals.
func (t TimeString) minutesBound() int {
	if t == EndOfDay {
		return minutesPerDay
	}
	return t.Minutes()
}

func (t TimeString) parse() (hours, minutes int, ok bool) {
	if len(t) != 5 || t[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, 0, false
		}
	}
	hours = int(t[0]-'0')*10 + int(t[1]-'0')
	minutes = int(t[3]-'0')*10 + int(t[4]-'0')
	return hours, minutes, true
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back intervals do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
