package alarms

import (
	"time"

	"github.com/desertthunder/charmed/internal/clock"
	"github.com/desertthunder/charmed/internal/models"
)

// FindDue returns a copy of the first alarm, in creation order, that is due
// at the given instant: active, time equal to the current "HH:MM" minute,
// and recurring on today's weekday (an empty day set recurs daily).
//
// At most one alarm is returned per call even when several share a time.
// Matching is by exact minute-string equality, so a driver polling more than
// once within the same minute sees the same match again; de-duplication
// across ticks is the driver's responsibility.
func (r *Registry) FindDue(now time.Time) *models.Alarm {
	current := clock.HHMM(now)
	today := clock.WeekdayOf(now)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.alarms {
		a := &r.alarms[i]
		if a.Active && a.Time == current && a.RepeatsOn(today) {
			match := a.Clone()
			return &match
		}
	}

	return nil
}
