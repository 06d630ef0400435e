package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/playback"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()

	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open history database: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	return l
}

func TestLog(t *testing.T) {
	alarm := models.Alarm{
		ID:           "a1",
		Time:         "07:30",
		PlaylistName: "Morning Mix",
		PlaylistURI:  "spotify:playlist:abc123",
	}

	t.Run("record and read back", func(t *testing.T) {
		l := openTestLog(t)

		firedAt := time.Date(2025, 3, 3, 7, 30, 0, 0, time.UTC)
		result := playback.Result{Outcome: playback.OutcomeRemote}

		if err := l.Record(alarm, result, firedAt); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries, err := l.Recent(10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected one entry, got %d", len(entries))
		}

		e := entries[0]
		if e.AlarmID != "a1" || e.AlarmTime != "07:30" || e.PlaylistName != "Morning Mix" {
			t.Errorf("alarm fields lost: %+v", e)
		}
		if e.Outcome != string(playback.OutcomeRemote) {
			t.Errorf("expected remote outcome, got %s", e.Outcome)
		}
		if !e.FiredAt.Equal(firedAt) {
			t.Errorf("expected fired_at %v, got %v", firedAt, e.FiredAt)
		}
	})

	t.Run("fallback detail is preserved", func(t *testing.T) {
		l := openTestLog(t)

		result := playback.Result{Outcome: playback.OutcomeFallback, Detail: "no active device"}
		if err := l.Record(alarm, result, time.Now()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		entries, err := l.Recent(10)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entries[0].Detail != "no active device" {
			t.Errorf("expected fallback detail, got %q", entries[0].Detail)
		}
	})

	t.Run("recent orders newest first and respects limit", func(t *testing.T) {
		l := openTestLog(t)

		base := time.Date(2025, 3, 3, 7, 0, 0, 0, time.UTC)
		for i := 0; i < 5; i++ {
			a := alarm
			a.ID = string(rune('a' + i))
			if err := l.Record(a, playback.Result{Outcome: playback.OutcomeRemote}, base.Add(time.Duration(i)*time.Minute)); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		}

		entries, err := l.Recent(3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected three entries, got %d", len(entries))
		}
		if entries[0].AlarmID != "e" || entries[2].AlarmID != "c" {
			t.Errorf("expected newest first, got %v", entries)
		}
	})

	t.Run("for alarm filters by id", func(t *testing.T) {
		l := openTestLog(t)

		other := alarm
		other.ID = "a2"

		l.Record(alarm, playback.Result{Outcome: playback.OutcomeRemote}, time.Now())
		l.Record(other, playback.Result{Outcome: playback.OutcomeFallback}, time.Now())

		entries, err := l.ForAlarm("a2", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 1 || entries[0].AlarmID != "a2" {
			t.Errorf("expected only a2 entries, got %v", entries)
		}
	})

	t.Run("empty log", func(t *testing.T) {
		l := openTestLog(t)

		entries, err := l.Recent(0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %v", entries)
		}
	})
}
