package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/charmed/internal/alarms"
	"github.com/desertthunder/charmed/internal/clock"
	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/shared"
	"github.com/urfave/cli/v3"
)

// AlarmAdd schedules a new alarm. Volume and fade-in duration fall back to
// the defaults stored in the data directory's config.json.
func (r *Runner) AlarmAdd(ctx context.Context, cmd *cli.Command) error {
	appConfig, err := r.store.LoadConfig()
	if err != nil {
		r.logger.Warn("failed to load defaults", "error", err)
	}

	volume := cmd.Int("volume")
	if volume < 0 {
		volume = appConfig.DefaultVolume
	}

	fadeInDuration := cmd.Int("fade-in-duration")
	if fadeInDuration < 0 {
		fadeInDuration = appConfig.DefaultFadeInDuration
	}

	days, err := parseDays(cmd.String("days"))
	if err != nil {
		return err
	}

	created, err := r.registry.Create(alarms.CreateSpec{
		Time:           cmd.String("time"),
		PlaylistName:   cmd.String("playlist-name"),
		PlaylistURI:    cmd.String("playlist-uri"),
		Volume:         volume,
		Days:           days,
		FadeIn:         cmd.Bool("fade-in"),
		FadeInDuration: fadeInDuration,
	})
	if err != nil {
		return err
	}

	r.logger.Info("alarm created", "id", created.ID, "time", created.Time)

	if cmd.Bool("json") {
		return r.writeJSON(created, true)
	}

	r.writeSuccess("Alarm scheduled for %s", created.Time)
	r.writePlain("  ID: %s\n", created.ID)
	if created.PlaylistName != "" {
		r.writePlain("  Playlist: %s\n", created.PlaylistName)
	}
	r.writePlain("  Volume: %d\n", created.Volume)
	r.writePlain("  Days: %s\n", describeDays(created.Days))

	if seconds, err := clock.SecondsUntil(created.Time, r.clock.Now()); err == nil {
		r.writePlain("  Rings in %s\n", clock.FormatDuration(seconds))
	}

	return nil
}

// AlarmList lists all alarms in creation order.
func (r *Runner) AlarmList(ctx context.Context, cmd *cli.Command) error {
	listed := r.registry.List()

	if cmd.Bool("json") {
		return r.writeJSON(listed, cmd.Bool("pretty"))
	}

	if len(listed) == 0 {
		r.writePlain("No alarms scheduled. Add one with: charmed alarm add --time 07:30\n")
		return nil
	}

	r.writePlain("Found %d alarm(s):\n\n", len(listed))
	for i, a := range listed {
		line := fmt.Sprintf("%d. %s", i+1, a.Time)
		if a.Active {
			line = activeStyle.Render(line)
		} else {
			line = inactiveStyle.Render(line)
		}
		r.writePlain("%s\n", line)

		r.writePlain("   ID: %s\n", a.ID)
		if a.PlaylistName != "" {
			r.writePlain("   Playlist: %s\n", a.PlaylistName)
		}
		r.writePlain("   Volume: %d\n", a.Volume)
		r.writePlain("   Days: %s\n", describeDays(a.Days))
		if a.FadeIn {
			r.writePlain("   Fade in: %ds\n", a.FadeInDuration)
		}
		r.writePlain("\n")
	}

	return nil
}

// AlarmToggle flips an alarm's active flag.
func (r *Runner) AlarmToggle(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: alarm id", shared.ErrMissingArgument)
	}

	active, err := r.registry.Toggle(id)
	if err != nil {
		return err
	}

	if active {
		r.writeSuccess("Alarm %s enabled", id)
	} else {
		r.writeSuccess("Alarm %s disabled", id)
	}

	return nil
}

// AlarmDelete removes an alarm from the registry.
func (r *Runner) AlarmDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: alarm id", shared.ErrMissingArgument)
	}

	if err := r.registry.Delete(id); err != nil {
		return err
	}

	r.writeSuccess("Alarm %s deleted", id)
	return nil
}

// AlarmNext reports the soonest upcoming active alarm.
//
// The countdown treats every active alarm as ringing within the next 24
// hours, regardless of its recurrence days.
func (r *Runner) AlarmNext(ctx context.Context, cmd *cli.Command) error {
	now := r.clock.Now()

	var next *models.Alarm
	nextSeconds := 0

	for _, a := range r.registry.List() {
		if !a.Active {
			continue
		}
		seconds, err := clock.SecondsUntil(a.Time, now)
		if err != nil {
			continue
		}
		if next == nil || seconds < nextSeconds {
			a := a
			next = &a
			nextSeconds = seconds
		}
	}

	if next == nil {
		r.writePlain("No active alarms.\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"alarm":         next,
			"seconds_until": nextSeconds,
			"rings_in":      clock.FormatDuration(nextSeconds),
		}, true)
	}

	r.writePlain("Next alarm: %s", next.Time)
	if next.PlaylistName != "" {
		r.writePlain(" (%s)", next.PlaylistName)
	}
	r.writePlain("\n")
	r.writePlain("Rings in %s\n", clock.FormatDuration(nextSeconds))

	return nil
}

// parseDays converts a comma-separated day list into weekdays.
func parseDays(value string) ([]clock.Weekday, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var days []clock.Weekday
	for _, part := range strings.Split(value, ",") {
		label := strings.ToLower(strings.TrimSpace(part))
		day, ok := clock.ParseWeekday(label)
		if !ok {
			return nil, fmt.Errorf("%w: unknown day %q", shared.ErrInvalidArgument, part)
		}
		days = append(days, day)
	}

	return days, nil
}

// describeDays renders a day set for plain output.
func describeDays(days []clock.Weekday) string {
	if len(days) == 0 {
		return "every day"
	}

	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.String()
	}
	return strings.Join(labels, ", ")
}
