package alarms

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/charmed/internal/clock"
	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/shared"
)

// Persister mirrors the registry to durable storage after each mutation.
type Persister interface {
	SaveAlarms(alarms []models.Alarm) error
}

// CreateSpec contains the caller-supplied fields for a new alarm.
type CreateSpec struct {
	Time           string
	PlaylistName   string
	PlaylistURI    string
	Volume         int
	Days           []clock.Weekday
	FadeIn         bool
	FadeInDuration int
}

// Registry is the shared collection of scheduled alarms.
type Registry struct {
	mu     sync.RWMutex
	alarms []models.Alarm
	store  Persister
	logger *log.Logger
}

// NewRegistry creates an empty registry. The store may be nil, in which case
// mutations are kept in memory only.
func NewRegistry(store Persister, logger *log.Logger) *Registry {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Registry{
		store:  store,
		logger: logger,
	}
}

// Create validates the request, assigns a fresh id, appends the alarm, and
// persists the collection. New alarms always start active; volume is clamped
// to [0,100] and duplicate recurrence days are discarded.
//
// Returns the stored copy, or [shared.ErrInvalidTimeFormat] when the time
// string is not a valid "HH:MM".
func (r *Registry) Create(spec CreateSpec) (models.Alarm, error) {
	if _, _, err := clock.ParseHHMM(spec.Time); err != nil {
		return models.Alarm{}, err
	}

	alarm := models.Alarm{
		ID:             shared.GenerateID(),
		Time:           spec.Time,
		PlaylistName:   spec.PlaylistName,
		PlaylistURI:    spec.PlaylistURI,
		Volume:         clampVolume(spec.Volume),
		Active:         true,
		Days:           dedupeDays(spec.Days),
		FadeIn:         spec.FadeIn,
		FadeInDuration: spec.FadeInDuration,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarms = append(r.alarms, alarm)
	r.persistLocked()

	return alarm.Clone(), nil
}

// List returns a snapshot of all alarms in creation order.
func (r *Registry) List() []models.Alarm {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Alarm, len(r.alarms))
	for i, a := range r.alarms {
		out[i] = a.Clone()
	}
	return out
}

// Count returns the number of alarms currently registered.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.alarms)
}

// Toggle flips the active flag of the alarm with the given id, persists, and
// returns the new value. Returns [shared.ErrAlarmNotFound] for unknown ids.
func (r *Registry) Toggle(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alarms {
		if r.alarms[i].ID == id {
			r.alarms[i].Active = !r.alarms[i].Active
			r.persistLocked()
			return r.alarms[i].Active, nil
		}
	}

	return false, fmt.Errorf("%w: %s", shared.ErrAlarmNotFound, id)
}

// Delete removes the alarm with the given id and persists. Returns
// [shared.ErrAlarmNotFound] for unknown ids, leaving the collection intact.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.alarms {
		if r.alarms[i].ID == id {
			r.alarms = append(r.alarms[:i], r.alarms[i+1:]...)
			r.persistLocked()
			return nil
		}
	}

	return fmt.Errorf("%w: %s", shared.ErrAlarmNotFound, id)
}

// Restore replaces the whole collection with previously persisted records.
// Used once at startup; records are assumed valid and no persistence write
// is triggered.
func (r *Registry) Restore(records []models.Alarm) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.alarms = make([]models.Alarm, len(records))
	for i, a := range records {
		r.alarms[i] = a.Clone()
	}
}

// persistLocked mirrors the collection to the store. Callers must hold the
// write lock. A failed write is logged; the in-memory mutation stands.
func (r *Registry) persistLocked() {
	if r.store == nil {
		return
	}

	snapshot := make([]models.Alarm, len(r.alarms))
	for i, a := range r.alarms {
		snapshot[i] = a.Clone()
	}

	if err := r.store.SaveAlarms(snapshot); err != nil {
		r.logger.Warn("failed to persist alarms", "error", err, "count", len(snapshot))
	}
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func dedupeDays(days []clock.Weekday) []clock.Weekday {
	if len(days) == 0 {
		return nil
	}

	seen := make(map[clock.Weekday]bool, len(days))
	out := make([]clock.Weekday, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}
