package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/itchyny/timefmt-go"
)

// TimeFormat is the strftime layout of stored timestamps: microsecond
// precision, no zone, interpreted in local time.
const TimeFormat = "%Y-%m-%dT%H:%M:%S.%f"

// ErrTimestampFormat is returned when a stored timestamp does not match
// TimeFormat. Reconstruction treats it as fatal.
var ErrTimestampFormat = errors.New("timestamp does not match format " + TimeFormat)

// FormatTime renders t in local time using TimeFormat.
func FormatTime(t time.Time) string {
	return timefmt.Format(t.Local(), TimeFormat)
}

// ParseTime parses a timestamp in TimeFormat. The fraction takes one to
// six digits.
func ParseTime(s string) (time.Time, error) {
	t, err := timefmt.ParseInLocation(s, TimeFormat, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrTimestampFormat, err)
	}
	return t, nil
}
