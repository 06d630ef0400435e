// package clock provides wall-clock helpers for alarm scheduling.
//
// Matching granularity is one minute: times are exchanged as zero-padded
// "HH:MM" strings and seconds are discarded everywhere.
package clock

import (
	"fmt"
	"time"

	"github.com/desertthunder/charmed/internal/shared"
)

// Clock returns the current time. Injecting a fake implementation lets
// matcher tests pin "now" to a specific weekday and minute.
type Clock interface {
	Now() time.Time
}

// RealClock implements [Clock] using the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock implements [Clock] with a constant time for tests.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// HHMM formats the local time of day as a zero-padded "HH:MM" string.
func HHMM(t time.Time) string {
	return t.Format("15:04")
}

// ParseHHMM validates and splits a zero-padded "HH:MM" string.
//
// Stricter than [time.Parse]: single-digit hours are rejected so that a
// stored time always compares equal to the formatted current minute.
func ParseHHMM(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("%w: %q", shared.ErrInvalidTimeFormat, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, fmt.Errorf("%w: %q", shared.ErrInvalidTimeFormat, s)
		}
	}

	hour = int(s[0]-'0')*10 + int(s[1]-'0')
	minute = int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", shared.ErrInvalidTimeFormat, s)
	}

	return hour, minute, nil
}

// SecondsUntil computes the seconds from now until the next occurrence of
// the given "HH:MM" time of day. A time earlier than the current minute is
// treated as tomorrow's occurrence; a time equal to the current minute is
// due now and yields zero.
//
// The day-of-week recurrence set is deliberately not consulted, so the
// result for a restricted-days alarm can be short by whole days.
func SecondsUntil(timeStr string, now time.Time) (int, error) {
	hour, minute, err := ParseHHMM(timeStr)
	if err != nil {
		return 0, err
	}

	target := hour*3600 + minute*60
	current := now.Hour()*3600 + now.Minute()*60

	diff := target - current
	if diff < 0 {
		diff += 24 * 3600
	}
	return diff, nil
}

// FormatDuration humanizes a duration in seconds for display.
//
// Wording and pluralization mirror the desktop app: "30 secondes",
// "1 seconde", "1 minute", "2 heures", and the compact "1h 1m" form for
// hours with a minute remainder.
func FormatDuration(seconds int) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d seconde%s", seconds, plural(seconds))
	case seconds < 3600:
		minutes := seconds / 60
		return fmt.Sprintf("%d minute%s", minutes, plural(minutes))
	default:
		hours := seconds / 3600
		minutes := (seconds % 3600) / 60
		if minutes > 0 {
			return fmt.Sprintf("%dh %dm", hours, minutes)
		}
		return fmt.Sprintf("%d heure%s", hours, plural(hours))
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
