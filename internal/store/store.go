// package store persists the alarm registry and application defaults as
// pretty-printed JSON documents in a data directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/shared"
)

const (
	alarmsFile = "alarms.json"
	configFile = "config.json"
)

// AppConfig contains application-level defaults stored alongside the alarms.
// Field names match the persisted config.json layout.
type AppConfig struct {
	SpotifyClientID       string `json:"spotify_client_id"`
	SpotifyClientSecret   string `json:"spotify_client_secret"`
	SpotifyRedirectURI    string `json:"spotify_redirect_uri"`
	DefaultVolume         int    `json:"default_volume"`
	DefaultFadeInDuration int    `json:"default_fade_in_duration"`
}

// DefaultAppConfig returns the defaults used when no config.json exists.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		SpotifyRedirectURI:    "http://localhost:8888/callback",
		DefaultVolume:         80,
		DefaultFadeInDuration: 300,
	}
}

// Store reads and writes the JSON documents under one data directory.
type Store struct {
	dir    string
	logger *log.Logger
}

// New creates a store rooted at the given directory. The directory is
// created on first write, not here.
func New(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the data directory backing the store.
func (s *Store) Dir() string {
	return s.dir
}

// SaveAlarms writes the full alarm collection to alarms.json, creating the
// data directory if missing.
func (s *Store) SaveAlarms(alarms []models.Alarm) error {
	data, err := shared.MarshalJSON(alarms, true)
	if err != nil {
		return fmt.Errorf("%w: encoding alarms: %v", shared.ErrSerialization, err)
	}
	return s.write(alarmsFile, data)
}

// LoadAlarms restores the alarm collection from alarms.json.
//
// A missing file is a first run and yields an empty collection. A corrupt
// file is logged and also yields an empty collection, so startup never
// fails on bad persisted state.
func (s *Store) LoadAlarms() ([]models.Alarm, error) {
	data, err := s.read(alarmsFile)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []models.Alarm{}, nil
	}

	var alarms []models.Alarm
	if err := json.Unmarshal(data, &alarms); err != nil {
		s.logger.Warn("alarms file is corrupt, starting with an empty registry", "file", alarmsFile, "error", err)
		return []models.Alarm{}, nil
	}

	return alarms, nil
}

// SaveConfig writes the application defaults to config.json.
func (s *Store) SaveConfig(config AppConfig) error {
	data, err := shared.MarshalJSON(config, true)
	if err != nil {
		return fmt.Errorf("%w: encoding config: %v", shared.ErrSerialization, err)
	}
	return s.write(configFile, data)
}

// LoadConfig restores the application defaults from config.json, falling
// back to [DefaultAppConfig] when the file is missing or corrupt.
func (s *Store) LoadConfig() (AppConfig, error) {
	data, err := s.read(configFile)
	if err != nil {
		return DefaultAppConfig(), err
	}
	if data == nil {
		return DefaultAppConfig(), nil
	}

	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		s.logger.Warn("config file is corrupt, using defaults", "file", configFile, "error", err)
		return DefaultAppConfig(), nil
	}

	return config, nil
}

// write persists a document under the data directory, creating it as needed.
func (s *Store) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: creating data directory: %v", shared.ErrIOFailure, err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", shared.ErrIOFailure, name, err)
	}

	return nil
}

// read returns the document's contents, or nil when the file does not exist.
func (s *Store) read(name string) ([]byte, error) {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", shared.ErrIOFailure, name, err)
	}

	return data, nil
}
