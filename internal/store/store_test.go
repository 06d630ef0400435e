package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/charmed/internal/clock"
	"github.com/desertthunder/charmed/internal/models"
)

func TestAlarms(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := New(t.TempDir(), nil)

		saved := []models.Alarm{
			{
				ID:           "a1",
				Time:         "07:30",
				PlaylistName: "Morning Mix",
				PlaylistURI:  "spotify:playlist:abc123",
				Volume:       80,
				Active:       true,
				Days:         []clock.Weekday{clock.Monday, clock.Friday},
			},
			{
				ID:             "a2",
				Time:           "22:00",
				Volume:         40,
				Active:         false,
				FadeIn:         true,
				FadeInDuration: 300,
			},
		}

		if err := s.SaveAlarms(saved); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := s.LoadAlarms()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(loaded) != 2 {
			t.Fatalf("expected two alarms, got %d", len(loaded))
		}
		if loaded[0].ID != "a1" || loaded[1].ID != "a2" {
			t.Error("load must preserve record order")
		}
		if loaded[0].Time != "07:30" || loaded[0].Volume != 80 || !loaded[0].Active {
			t.Errorf("first alarm fields lost in round trip: %+v", loaded[0])
		}
		if len(loaded[0].Days) != 2 || loaded[0].Days[0] != clock.Monday {
			t.Errorf("day set lost in round trip: %v", loaded[0].Days)
		}
		if !loaded[1].FadeIn || loaded[1].FadeInDuration != 300 {
			t.Errorf("fade-in fields lost in round trip: %+v", loaded[1])
		}
	})

	t.Run("empty collection round trip", func(t *testing.T) {
		s := New(t.TempDir(), nil)

		if err := s.SaveAlarms([]models.Alarm{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := s.LoadAlarms()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(loaded) != 0 {
			t.Errorf("expected empty collection, got %v", loaded)
		}
	})

	t.Run("missing file yields empty collection", func(t *testing.T) {
		s := New(t.TempDir(), nil)

		loaded, err := s.LoadAlarms()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded == nil || len(loaded) != 0 {
			t.Errorf("expected empty collection, got %v", loaded)
		}
	})

	t.Run("corrupt file yields empty collection", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, alarmsFile), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}

		s := New(dir, nil)
		loaded, err := s.LoadAlarms()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(loaded) != 0 {
			t.Errorf("expected empty collection, got %v", loaded)
		}
	})

	t.Run("save creates the data directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		s := New(dir, nil)

		if err := s.SaveAlarms([]models.Alarm{{ID: "a1", Time: "07:30"}}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(filepath.Join(dir, alarmsFile)); err != nil {
			t.Errorf("expected alarms file to exist: %v", err)
		}
	})

	t.Run("written file is human readable", func(t *testing.T) {
		dir := t.TempDir()
		s := New(dir, nil)

		if err := s.SaveAlarms([]models.Alarm{{ID: "a1", Time: "07:30"}}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, alarmsFile))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "\n") {
			t.Error("expected indented JSON output")
		}
	})
}

func TestConfig(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		s := New(t.TempDir(), nil)

		saved := AppConfig{
			SpotifyClientID:       "client-id",
			SpotifyClientSecret:   "client-secret",
			SpotifyRedirectURI:    "http://localhost:9999/callback",
			DefaultVolume:         65,
			DefaultFadeInDuration: 120,
		}

		if err := s.SaveConfig(saved); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := s.LoadConfig()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded != saved {
			t.Errorf("expected %+v, got %+v", saved, loaded)
		}
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		s := New(t.TempDir(), nil)

		loaded, err := s.LoadConfig()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded != DefaultAppConfig() {
			t.Errorf("expected defaults, got %+v", loaded)
		}
		if loaded.DefaultVolume != 80 || loaded.DefaultFadeInDuration != 300 {
			t.Errorf("unexpected default values: %+v", loaded)
		}
	})

	t.Run("corrupt file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, configFile), []byte("???"), 0644); err != nil {
			t.Fatal(err)
		}

		s := New(dir, nil)
		loaded, err := s.LoadConfig()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if loaded != DefaultAppConfig() {
			t.Errorf("expected defaults, got %+v", loaded)
		}
	})
}
