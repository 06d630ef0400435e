package models

import (
	"slices"

	"github.com/desertthunder/charmed/internal/clock"
)

// Alarm represents one scheduled playlist trigger.
//
// JSON field names match the persisted alarms.json layout: time is a
// zero-padded "HH:MM" string and days an array of weekday labels. An empty
// day set means the alarm fires every day.
type Alarm struct {
	ID             string          `json:"id"`
	Time           string          `json:"time"`
	PlaylistName   string          `json:"playlist_name"`
	PlaylistURI    string          `json:"playlist_uri"`
	Volume         int             `json:"volume"`
	Active         bool            `json:"active"`
	Days           []clock.Weekday `json:"days"`
	FadeIn         bool            `json:"fade_in"`
	FadeInDuration int             `json:"fade_in_duration"`
}

// Clone returns an independent copy of the alarm, including its day set.
func (a Alarm) Clone() Alarm {
	out := a
	out.Days = slices.Clone(a.Days)
	return out
}

// RepeatsOn reports whether the alarm recurs on the given day. An empty day
// set repeats daily.
func (a Alarm) RepeatsOn(day clock.Weekday) bool {
	if len(a.Days) == 0 {
		return true
	}
	return slices.Contains(a.Days, day)
}
