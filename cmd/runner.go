package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/charmed/internal/alarms"
	"github.com/desertthunder/charmed/internal/clock"
	"github.com/desertthunder/charmed/internal/history"
	"github.com/desertthunder/charmed/internal/playback"
	"github.com/desertthunder/charmed/internal/services"
	"github.com/desertthunder/charmed/internal/shared"
	"github.com/desertthunder/charmed/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#1DB954"))
	inactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	spotify    services.Service
	store      *store.Store
	registry   *alarms.Registry
	dispatcher *playback.Dispatcher
	clock      clock.Clock
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Spotify    services.Service
	Store      *store.Store
	Tone       playback.Tone
	Clock      clock.Clock
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration. The alarm
// registry is restored from the data directory so every command sees the
// persisted collection.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.ConfigPath == "" {
		opts.ConfigPath = "config.toml"
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	if opts.Store == nil {
		opts.Store = store.New(opts.Config.Storage.DataDir, opts.Logger)
	}

	registry := alarms.NewRegistry(opts.Store, opts.Logger)
	if records, err := opts.Store.LoadAlarms(); err != nil {
		opts.Logger.Warn("failed to load persisted alarms, starting empty", "error", err)
	} else {
		registry.Restore(records)
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		spotify:    opts.Spotify,
		store:      opts.Store,
		registry:   registry,
		dispatcher: playback.NewDispatcher(opts.Spotify, opts.Tone, opts.Logger),
		clock:      opts.Clock,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		alarmCommand, watchCommand, authCommand, playlistsCommand, devicesCommand, historyCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeSuccess(format string, args ...any) error {
	return r.writePlain("%s\n", successStyle.Render("✓ "+fmt.Sprintf(format, args...)))
}

func (r *Runner) writeWarning(format string, args ...any) error {
	return r.writePlain("%s\n", warningStyle.Render("⚠ "+fmt.Sprintf(format, args...)))
}

// saveTokens persists a fresh OAuth token to the TOML config file.
func (r *Runner) saveTokens(token *oauth2.Token) error {
	if err := r.config.Credentials.Spotify.Update(token); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

// openHistory opens the trigger log configured in the TOML config.
func (r *Runner) openHistory() (*history.Log, error) {
	path := r.config.Storage.HistoryPath
	if path == "" {
		path = "./charmed.db"
	}
	return history.Open(path)
}
