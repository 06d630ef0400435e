package clock

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Weekday is a closed enumeration of the seven recurrence days.
//
// Alarms carry these internally; the string labels ("Monday".."Sunday")
// appear only at the JSON boundary, matching the persisted file format.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayLabels = [...]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayLabels[d]
}

// ParseWeekday maps a label back to its [Weekday], ignoring case. The second
// return value reports whether the label was recognized.
func ParseWeekday(label string) (Weekday, bool) {
	for i, l := range weekdayLabels {
		if strings.EqualFold(l, label) {
			return Weekday(i), true
		}
	}
	return Monday, false
}

// WeekdayOf maps a calendar date to its [Weekday]. Total, never fails.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// Weekdays returns all seven days in label order, Monday first.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// MarshalJSON encodes the weekday as its string label.
func (d Weekday) MarshalJSON() ([]byte, error) {
	if d < Monday || d > Sunday {
		return nil, fmt.Errorf("invalid weekday value %d", int(d))
	}
	return json.Marshal(weekdayLabels[d])
}

// UnmarshalJSON decodes a string label into a weekday.
func (d *Weekday) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}

	day, ok := ParseWeekday(label)
	if !ok {
		return fmt.Errorf("unrecognized weekday label %q", label)
	}
	*d = day
	return nil
}
