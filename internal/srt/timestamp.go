package srt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrTimestampFormat reports input that does not match the HH:MM:SS,mmm shape.
var ErrTimestampFormat = errors.New("invalid timestamp format")

var timestampPattern = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2}),(\d{3})$`)

// Timestamp is a point on a subtitle timeline with millisecond resolution.
// Minutes and seconds stay in 0-59; hours grow without bound for long
// recordings.
type Timestamp struct {
	Hours   int
	Minutes int
	Seconds int
	Millis  int
}

// ParseTimestamp decodes a timestamp of the exact shape HH:MM:SS,mmm.
// Anything else fails with an error wrapping ErrTimestampFormat; callers are
// expected to have pattern-matched candidate text before handing it over.
func ParseTimestamp(value string) (Timestamp, error) {
	match := timestampPattern.FindStringSubmatch(value)
	if match == nil {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrTimestampFormat, value)
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	millis, _ := strconv.Atoi(match[4])
	if minutes > 59 || seconds > 59 {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrTimestampFormat, value)
	}
	return Timestamp{Hours: hours, Minutes: minutes, Seconds: seconds, Millis: millis}, nil
}

// TimestampFromSeconds converts fractional seconds to a Timestamp, rounding
// sub-millisecond remainders to the nearest millisecond. Rounding happens on
// the total so a value like 59.9996s carries into the next minute instead of
// rendering 1000 milliseconds.
func TimestampFromSeconds(total float64) Timestamp {
	totalMillis := int64(math.Round(total * 1000))
	if totalMillis < 0 {
		totalMillis = 0
	}
	return Timestamp{
		Hours:   int(totalMillis / 3_600_000),
		Minutes: int(totalMillis % 3_600_000 / 60_000),
		Seconds: int(totalMillis % 60_000 / 1000),
		Millis:  int(totalMillis % 1000),
	}
}

// TotalSeconds returns the timestamp as fractional seconds.
func (t Timestamp) TotalSeconds() float64 {
	return float64(t.Hours)*3600 + float64(t.Minutes)*60 + float64(t.Seconds) + float64(t.Millis)/1000
}

// Add shifts the timestamp by the given number of seconds.
func (t Timestamp) Add(offsetSeconds float64) Timestamp {
	return TimestampFromSeconds(t.TotalSeconds() + offsetSeconds)
}

// String renders the canonical SRT form, e.g. "00:05:10,500".
func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d", t.Hours, t.Minutes, t.Seconds, t.Millis)
}
