package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Schedule-style clock handling. Static schedules express times as
// HH:MM:SS where the hour may be 24, 25, 26... for trips that run
// past midnight but still belong to the previous service day. Such
// times are kept as unbounded offsets from midnight rather than
// wrapped modulo 24h, so ordering and arithmetic against same-day
// times stay correct.

// ParseClock parses a schedule-style clock string into an offset
// from midnight. Each field must be exactly two digits; the hour may
// range up to 99. Anything else is a parse failure.
func ParseClock(s string) (time.Duration, error) {
	split := strings.Split(s, ":")
	if len(split) != 3 {
		return 0, fmt.Errorf("found %d parts in %q", len(split), s)
	}

	hms := [3]int{}
	for i, str := range split {
		if len(str) != 2 {
			return 0, fmt.Errorf("field %d in %q is not two digits", i, s)
		}
		j, err := strconv.Atoi(str)
		if err != nil || j < 0 {
			return 0, fmt.Errorf("non-numeric field %d in %q", i, s)
		}
		hms[i] = j
	}

	if hms[1] > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	if hms[2] > 59 {
		return 0, fmt.Errorf("invalid second in %q", s)
	}

	return time.Duration(hms[0])*time.Hour +
		time.Duration(hms[1])*time.Minute +
		time.Duration(hms[2])*time.Second, nil
}

// FormatClock renders an offset from midnight as a schedule-style
// clock string. Offsets of 24h or more keep their oversized hour
// field.
func FormatClock(offset time.Duration) string {
	h := int(offset.Hours())
	m := int(offset.Minutes()) - h*60
	s := int(offset.Seconds()) - h*3600 - m*60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// ParseDate parses an 8-digit YYYYMMDD date.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation("20060102", date, time.UTC)
}
