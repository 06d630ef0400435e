package main

import (
	"context"

	"github.com/desertthunder/charmed/internal/history"
	"github.com/desertthunder/charmed/internal/playback"
	"github.com/urfave/cli/v3"
)

// History prints the trigger log, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	histLog, err := r.openHistory()
	if err != nil {
		return err
	}
	defer histLog.Close()

	limit := cmd.Int("limit")
	alarmID := cmd.String("alarm")

	var entries []history.Entry
	if alarmID != "" {
		entries, err = histLog.ForAlarm(alarmID, limit)
	} else {
		entries, err = histLog.Recent(limit)
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, cmd.Bool("pretty"))
	}

	if len(entries) == 0 {
		r.writePlain("No alarms have fired yet.\n")
		return nil
	}

	r.writePlain("Last %d trigger(s):\n\n", len(entries))
	for _, e := range entries {
		when := e.FiredAt.Local().Format("2006-01-02 15:04")
		if e.Outcome == string(playback.OutcomeRemote) {
			r.writePlain("%s  %s  %s\n", when, e.AlarmTime, e.PlaylistName)
		} else {
			r.writePlain("%s  %s  %s\n", when, e.AlarmTime, warningStyle.Render("fallback: "+e.Detail))
		}
	}

	return nil
}
