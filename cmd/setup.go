package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/charmed/internal/shared"
	"github.com/desertthunder/charmed/internal/store"
	"github.com/urfave/cli/v3"
)

// SetupConfig creates config.toml from the embedded template plus the data
// directory with its default config.json.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err == nil {
		r.writeWarning("Config file already exists at %s, leaving it untouched", configPath)
	} else {
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writeSuccess("Config file created at %s", configPath)
	}

	appConfig, err := r.store.LoadConfig()
	if err != nil {
		r.logger.Warn("failed to load application defaults", "error", err)
		appConfig = store.DefaultAppConfig()
	}
	if err := r.store.SaveConfig(appConfig); err != nil {
		return fmt.Errorf("failed to write application defaults: %w", err)
	}
	r.writeSuccess("Data directory ready at %s", r.store.Dir())

	r.writePlainln("Next steps:")
	r.writePlain("1. Add your Spotify client_id and client_secret to %s\n", configPath)
	r.writePlain("2. Run 'charmed auth login' to connect your account\n")
	r.writePlain("3. Run 'charmed setup database' to initialize the history log\n")

	return nil
}

// SetupDatabase initializes the history database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err == nil {
		if loaded, loadErr := shared.LoadConfig(configPath); loadErr == nil {
			config = loaded
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", loadErr)
		}
	}

	path := config.Storage.HistoryPath
	if path == "" {
		path = "./charmed.db"
	}

	r.logger.Info("initializing database", "path", path)

	db, err := shared.NewDatabase(path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.writeSuccess("History database ready at %s", path)
	return nil
}
