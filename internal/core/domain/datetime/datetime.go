// Package datetime interprets user-entered calendar fields and time-of-day
// strings in the single timezone the bot is configured with. All instants in
// the system carry that location; callers obtain "now" from the injected
// clock so tests can pin it.
package datetime

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

var (
	ErrInvalidDate   = errors.New("date is invalid or not in the future")
	ErrInvalidFormat = errors.New("time must be in HH:MM format")
)

// Compose builds an absolute instant from calendar fields in the location of
// now. time.Date silently normalizes out-of-range fields (February 30th
// becomes March 2nd), so the components are round-tripped to reject
// calendar-invalid input. Instants not strictly after now are rejected as
// well: a reminder must be in the future.
func Compose(year int, month time.Month, day int, hour int, minute int, now time.Time) (time.Time, error) {
	at := time.Date(year, month, day, hour, minute, 0, 0, now.Location())
	if at.Year() != year || at.Month() != month || at.Day() != day || at.Hour() != hour || at.Minute() != minute {
		return time.Time{}, ErrInvalidDate
	}
	if !at.After(now) {
		return time.Time{}, ErrInvalidDate
	}
	return at, nil
}

type TimeOfDay struct {
	Hour   int
	Minute int
}

func NewTimeOfDay(hour int, minute int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return ErrInvalidFormat
	}
	return nil
}

// NextAfter returns the next wall-clock occurrence of the time of day
// strictly after now, in the location of now.
func (t TimeOfDay) NextAfter(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = carbon.Time2Carbon(next).AddDay().Carbon2Time()
	}
	return next
}

// ParseDateTime parses a "YYYY-MM-DD HH:MM" string into an absolute instant
// in the location of now. The instant must be strictly after now.
func ParseDateTime(value string, now time.Time) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) != 2 {
		return time.Time{}, ErrInvalidFormat
	}
	dateParts := strings.Split(fields[0], "-")
	if len(dateParts) != 3 {
		return time.Time{}, ErrInvalidFormat
	}
	year, err := strconv.Atoi(dateParts[0])
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	month, err := strconv.Atoi(dateParts[1])
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	day, err := strconv.Atoi(dateParts[2])
	if err != nil {
		return time.Time{}, ErrInvalidFormat
	}
	tod, err := ParseTimeOfDay(fields[1])
	if err != nil {
		return time.Time{}, err
	}
	return Compose(year, time.Month(month), day, tod.Hour, tod.Minute, now)
}

// ParseTimeOfDay parses a 24-hour "HH:MM" string.
func ParseTimeOfDay(value string) (t TimeOfDay, err error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 {
		return t, ErrInvalidFormat
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return t, ErrInvalidFormat
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return t, ErrInvalidFormat
	}
	t = TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}
