// package playback dispatches due alarms to a music service, falling back to
// a local tone when remote playback is unavailable.
package playback

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/charmed/internal/models"
	"github.com/desertthunder/charmed/internal/services"
	"github.com/desertthunder/charmed/internal/shared"
)

// Outcome describes how a triggered alarm was serviced.
type Outcome string

const (
	// OutcomeRemote means the music service started playlist playback.
	OutcomeRemote Outcome = "remote"
	// OutcomeFallback means the local tone rang instead.
	OutcomeFallback Outcome = "fallback"
)

// Result is the record of one trigger, suitable for the history log.
type Result struct {
	Outcome Outcome
	Detail  string // reason for falling back, empty on remote playback
}

// Dispatcher owns the ringing state. All trigger and stop operations are
// serialized through its mutex, so concurrent due alarms cannot interleave
// playback commands.
type Dispatcher struct {
	mu      sync.Mutex
	svc     services.Service
	tone    Tone
	logger  *log.Logger
	current *models.Alarm
}

// NewDispatcher creates a dispatcher. The service may be nil when the user
// never authenticated; every trigger then rings the fallback tone. A nil
// tone defaults to the terminal bell.
func NewDispatcher(svc services.Service, tone Tone, logger *log.Logger) *Dispatcher {
	if tone == nil {
		tone = NewTerminalBell(nil)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Dispatcher{
		svc:    svc,
		tone:   tone,
		logger: logger,
	}
}

// Trigger services a due alarm. Remote playback is attempted first: the
// device volume is set to the alarm's level and the playlist starts on the
// active device. Any failure there degrades to the local tone rather than a
// silent morning.
//
// The returned error is non-nil only when the fallback tone itself failed.
func (d *Dispatcher) Trigger(ctx context.Context, alarm models.Alarm) (Result, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	detail := ""
	switch {
	case d.svc == nil || !d.svc.Authenticated():
		detail = "not authenticated with " + d.serviceName()
	case alarm.PlaylistURI == "":
		detail = "no playlist configured"
	default:
		err := d.svc.Play(ctx, alarm.PlaylistURI, alarm.Volume)
		if err == nil {
			d.current = &alarm
			d.logger.Info("started remote playback",
				"alarm", alarm.ID,
				"playlist", alarm.PlaylistName,
				"volume", alarm.Volume,
			)
			return Result{Outcome: OutcomeRemote}, nil
		}
		detail = err.Error()
		d.logger.Warn("remote playback failed, ringing fallback tone", "alarm", alarm.ID, "error", err)
	}

	if err := d.tone.Start(); err != nil {
		return Result{Outcome: OutcomeFallback, Detail: detail},
			fmt.Errorf("starting fallback tone: %w", err)
	}

	d.current = &alarm
	d.logger.Info("ringing fallback tone", "alarm", alarm.ID, "reason", detail)

	return Result{Outcome: OutcomeFallback, Detail: detail}, nil
}

// Stop silences the fallback tone and clears the ringing state. Remote
// playback is left running; stopping the playlist is the listener's call.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.tone.Stop()
	d.current = nil
}

// Ringing returns the alarm currently being serviced, if any.
func (d *Dispatcher) Ringing() (models.Alarm, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return models.Alarm{}, false
	}
	return d.current.Clone(), true
}

func (d *Dispatcher) serviceName() string {
	if d.svc == nil {
		return "music service"
	}
	return d.svc.Name()
}
