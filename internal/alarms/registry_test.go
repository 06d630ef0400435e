package alarms

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/desertthunder/charmed/internal/clock"
	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/shared"
)

// recordingStore captures persisted snapshots for assertions.
type recordingStore struct {
	mu    sync.Mutex
	saves [][]models.Alarm
	err   error
}

func (s *recordingStore) SaveAlarms(alarms []models.Alarm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, alarms)
	return s.err
}

func (s *recordingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

func TestRegistry(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("valid spec", func(t *testing.T) {
			store := &recordingStore{}
			reg := NewRegistry(store, nil)

			created, err := reg.Create(CreateSpec{
				Time:         "07:30",
				PlaylistName: "Morning Mix",
				PlaylistURI:  "spotify:playlist:abc123",
				Volume:       80,
				Days:         []clock.Weekday{clock.Monday, clock.Friday},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if created.ID == "" {
				t.Error("expected generated id")
			}
			if !created.Active {
				t.Error("new alarms must start active")
			}
			if created.Time != "07:30" {
				t.Errorf("expected time 07:30, got %s", created.Time)
			}

			listed := reg.List()
			if len(listed) != 1 {
				t.Fatalf("expected one alarm, got %d", len(listed))
			}
			if listed[0].ID != created.ID {
				t.Error("listed alarm should match created alarm")
			}

			if store.saveCount() != 1 {
				t.Errorf("expected one persistence write, got %d", store.saveCount())
			}
		})

		t.Run("clamps volume above 100", func(t *testing.T) {
			reg := NewRegistry(nil, nil)

			created, err := reg.Create(CreateSpec{Time: "07:30", Volume: 150})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if created.Volume != 100 {
				t.Errorf("expected volume clamped to 100, got %d", created.Volume)
			}

			listed := reg.List()
			if listed[0].Volume != 100 {
				t.Errorf("expected stored volume 100, got %d", listed[0].Volume)
			}
		})

		t.Run("clamps negative volume", func(t *testing.T) {
			reg := NewRegistry(nil, nil)

			created, err := reg.Create(CreateSpec{Time: "07:30", Volume: -5})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if created.Volume != 0 {
				t.Errorf("expected volume clamped to 0, got %d", created.Volume)
			}
		})

		t.Run("rejects invalid time", func(t *testing.T) {
			reg := NewRegistry(nil, nil)

			for _, badTime := range []string{"", "7:30", "24:00", "12:99", "noon"} {
				_, err := reg.Create(CreateSpec{Time: badTime})
				if !errors.Is(err, shared.ErrInvalidTimeFormat) {
					t.Errorf("Create(%q) expected ErrInvalidTimeFormat, got %v", badTime, err)
				}
			}

			if reg.Count() != 0 {
				t.Error("failed create must not mutate the collection")
			}
		})

		t.Run("discards duplicate days", func(t *testing.T) {
			reg := NewRegistry(nil, nil)

			created, err := reg.Create(CreateSpec{
				Time: "07:30",
				Days: []clock.Weekday{clock.Monday, clock.Monday, clock.Tuesday},
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(created.Days) != 2 {
				t.Errorf("expected deduplicated days, got %v", created.Days)
			}
		})

		t.Run("unique ids", func(t *testing.T) {
			reg := NewRegistry(nil, nil)
			seen := make(map[string]bool)

			for i := 0; i < 20; i++ {
				created, err := reg.Create(CreateSpec{Time: "07:30"})
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if seen[created.ID] {
					t.Fatalf("duplicate id %s", created.ID)
				}
				seen[created.ID] = true
			}
		})
	})

	t.Run("List returns independent copies", func(t *testing.T) {
		reg := NewRegistry(nil, nil)
		if _, err := reg.Create(CreateSpec{Time: "07:30", Days: []clock.Weekday{clock.Monday}}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		first := reg.List()
		first[0].Time = "mutated"
		first[0].Days[0] = clock.Sunday

		second := reg.List()
		if second[0].Time != "07:30" {
			t.Error("caller mutation must not affect registry state")
		}
		if second[0].Days[0] != clock.Monday {
			t.Error("caller mutation of day set must not affect registry state")
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		t.Run("is an involution", func(t *testing.T) {
			store := &recordingStore{}
			reg := NewRegistry(store, nil)

			created, err := reg.Create(CreateSpec{Time: "07:30"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			active, err := reg.Toggle(created.ID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if active {
				t.Error("first toggle should deactivate")
			}

			active, err = reg.Toggle(created.ID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !active {
				t.Error("second toggle should restore the original value")
			}

			// create + two toggles
			if store.saveCount() != 3 {
				t.Errorf("expected three persistence writes, got %d", store.saveCount())
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			reg := NewRegistry(nil, nil)

			_, err := reg.Toggle("missing")
			if !errors.Is(err, shared.ErrAlarmNotFound) {
				t.Errorf("expected ErrAlarmNotFound, got %v", err)
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("removes the alarm", func(t *testing.T) {
			reg := NewRegistry(nil, nil)

			first, _ := reg.Create(CreateSpec{Time: "07:30"})
			second, _ := reg.Create(CreateSpec{Time: "08:30"})

			if err := reg.Delete(first.ID); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			listed := reg.List()
			if len(listed) != 1 || listed[0].ID != second.ID {
				t.Errorf("expected only second alarm to remain, got %v", listed)
			}
		})

		t.Run("unknown id leaves collection unchanged", func(t *testing.T) {
			store := &recordingStore{}
			reg := NewRegistry(store, nil)

			created, _ := reg.Create(CreateSpec{Time: "07:30"})
			before := reg.List()
			savesBefore := store.saveCount()

			err := reg.Delete("missing")
			if !errors.Is(err, shared.ErrAlarmNotFound) {
				t.Fatalf("expected ErrAlarmNotFound, got %v", err)
			}

			after := reg.List()
			if len(after) != len(before) || after[0].ID != created.ID {
				t.Error("failed delete must not change the collection")
			}
			if store.saveCount() != savesBefore {
				t.Error("failed delete must not trigger a persistence write")
			}
		})
	})

	t.Run("Restore", func(t *testing.T) {
		store := &recordingStore{}
		reg := NewRegistry(store, nil)

		records := []models.Alarm{
			{ID: "a", Time: "07:30", Active: true},
			{ID: "b", Time: "08:30", Active: false},
		}
		reg.Restore(records)

		listed := reg.List()
		if len(listed) != 2 {
			t.Fatalf("expected two alarms, got %d", len(listed))
		}
		if listed[0].ID != "a" || listed[1].ID != "b" {
			t.Error("restore must preserve record order")
		}

		if store.saveCount() != 0 {
			t.Error("restore must not trigger a persistence write")
		}
	})

	t.Run("persistence failure keeps mutation", func(t *testing.T) {
		store := &recordingStore{err: fmt.Errorf("disk full")}
		reg := NewRegistry(store, nil)

		created, err := reg.Create(CreateSpec{Time: "07:30"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		listed := reg.List()
		if len(listed) != 1 || listed[0].ID != created.ID {
			t.Error("in-memory state must survive a failed persistence write")
		}
	})

	t.Run("concurrent mutations", func(t *testing.T) {
		reg := NewRegistry(&recordingStore{}, nil)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 10; j++ {
					if _, err := reg.Create(CreateSpec{Time: "07:30", Volume: 80}); err != nil {
						t.Errorf("concurrent create failed: %v", err)
					}
					reg.List()
				}
			}()
		}
		wg.Wait()

		if reg.Count() != 100 {
			t.Errorf("expected 100 alarms, got %d", reg.Count())
		}

		seen := make(map[string]bool)
		for _, a := range reg.List() {
			if seen[a.ID] {
				t.Fatalf("duplicate id %s after concurrent creates", a.ID)
			}
			seen[a.ID] = true
		}
	})
}
