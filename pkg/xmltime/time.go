// Copyright © 2018 One Concern

// Package xmltime provides a seconds-resolution UTC time with a fixed
// text format, usable as the value of an XML object member.
package xmltime

import (
	"strings"
	"time"
)

const (
	// Layout is the text format of a Time: "YYYY-MM-DD HH:MM:SS"
	Layout = "2006-01-02 15:04:05"

	// parseLayout accepts month, day and time of day fields with or without
	// their leading zero.
	parseLayout = "2006-1-2 15:4:5"

	// KeyLayout is the format returned by Key(), which sorts lexicographically in time order
	KeyLayout = "20060102.150405"
)

// Time wraps a unix time in whole seconds. The zero value is the unix epoch.
type Time struct {
	sec int64
}

// Unix builds a Time from seconds since the epoch.
func Unix(sec int64) Time {
	return Time{sec: sec}
}

// Now is the current time, truncated to the second.
func Now() Time {
	return Unix(time.Now().Unix())
}

// FromTime converts a standard time, dropping fractional seconds.
func FromTime(t time.Time) Time {
	return Unix(t.Unix())
}

// Parse reads a time in Layout. Unparsable text yields the epoch and an error.
//
// The date and the time of day may be separated by any run of whitespace,
// and fields other than the year need not be zero padded: "2010-6-8 1:2:3".
func Parse(text string) (Time, error) {
	fields := strings.Fields(text)
	if len(fields) >= 2 {
		text = fields[0] + " " + fields[1]
	}
	t, err := time.ParseInLocation(parseLayout, text, time.UTC)
	if err != nil {
		return Time{}, err
	}
	return FromTime(t), nil
}

// Unix is the number of seconds since the epoch.
func (t Time) Unix() int64 {
	return t.sec
}

// Time converts to a standard UTC time.
func (t Time) Time() time.Time {
	return time.Unix(t.sec, 0).UTC()
}

// IsZero is true for the epoch.
func (t Time) IsZero() bool {
	return t.sec == 0
}

// String formats the time in Layout.
func (t Time) String() string {
	return t.Time().Format(Layout)
}

// Key formats the time in KeyLayout.
func (t Time) Key() string {
	return t.Time().Format(KeyLayout)
}

// Add returns the time shifted by d, truncated to the second.
func (t Time) Add(d time.Duration) Time {
	return FromTime(t.Time().Add(d))
}

// MarshalText implements encoding.TextMarshaler
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Time) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
