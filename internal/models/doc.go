// Package models defines domain entities for the charmed alarm service.
//
// The central type is [Alarm], the single persistent entity: one scheduled
// trigger configuration carrying a wall-clock time, a day-of-week recurrence
// set, the target Spotify playlist, and playback parameters. Alarms are
// owned exclusively by the registry; values handed out by the registry are
// independent copies.
package models
