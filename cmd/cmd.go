// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// alarmCommand handles alarm registry operations
func alarmCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "alarm",
		Aliases: []string{"a"},
		Usage:   "Manage scheduled alarms",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Schedule a new alarm",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "time",
						Aliases:  []string{"t"},
						Usage:    "Alarm time in 24h HH:MM format",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "playlist-name",
						Usage: "Display name of the playlist to play",
					},
					&cli.StringFlag{
						Name:  "playlist-uri",
						Usage: "Spotify context URI (spotify:playlist:...)",
					},
					&cli.IntFlag{
						Name:    "volume",
						Aliases: []string{"v"},
						Usage:   "Playback volume 0-100 (defaults to the configured default)",
						Value:   -1,
					},
					&cli.StringFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Usage:   "Comma-separated recurrence days (e.g. monday,friday); empty rings daily",
					},
					&cli.BoolFlag{
						Name:  "fade-in",
						Usage: "Ramp the volume up gradually",
					},
					&cli.IntFlag{
						Name:  "fade-in-duration",
						Usage: "Fade-in length in seconds",
						Value: -1,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the created alarm as JSON",
					},
				},
				Action: r.AlarmAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List all alarms",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.AlarmList,
			},
			{
				Name:  "toggle",
				Usage: "Flip an alarm between active and inactive",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AlarmToggle,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Remove an alarm",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AlarmDelete,
			},
			{
				Name:  "next",
				Usage: "Show when the next active alarm rings",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AlarmNext,
			},
		},
	}
}

// watchCommand runs the foreground trigger loop
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Watch the clock and trigger due alarms",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "interval",
				Aliases: []string{"i"},
				Usage:   "Polling interval in seconds",
				Value:   30,
			},
		},
		Action: r.Watch,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SpotifyAuth,
			},
			{
				Name:   "status",
				Usage:  "Check the current authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistsCommand lists the user's Spotify playlists
func playlistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlists",
		Aliases: []string{"pl"},
		Usage:   "List Spotify playlists to pick alarm music from",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of playlists to return",
				Value: 50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.SpotifyPlaylists,
	}
}

// devicesCommand lists the user's playback devices
func devicesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "devices",
		Usage: "List Spotify playback devices",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.SpotifyDevices,
	}
}

// historyCommand inspects the trigger log
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Show recently triggered alarms",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of entries to show",
				Value: 20,
			},
			&cli.StringFlag{
				Name:  "alarm",
				Usage: "Only show entries for this alarm id",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: r.History,
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create config.toml and the data directory",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the history database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}
