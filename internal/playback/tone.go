package playback

import (
	"io"
	"os"
	"sync"
	"time"
)

// Tone is the last-resort alarm sound rung when remote playback cannot start.
type Tone interface {
	// Start begins ringing. Calling Start on a ringing tone is a no-op.
	Start() error

	// Stop silences the tone. Safe to call on a stopped tone.
	Stop()

	// Playing reports whether the tone is currently ringing.
	Playing() bool
}

// TerminalBell rings by writing the BEL character to a terminal at a fixed
// interval. It needs no audio stack, so it works on a headless machine where
// the watcher typically runs.
type TerminalBell struct {
	w        io.Writer
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewTerminalBell creates a bell writing to w, defaulting to stdout.
func NewTerminalBell(w io.Writer) *TerminalBell {
	if w == nil {
		w = os.Stdout
	}
	return &TerminalBell{
		w:        w,
		interval: 2 * time.Second,
	}
}

func (b *TerminalBell) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stop != nil {
		return nil
	}

	if _, err := b.w.Write([]byte("\a")); err != nil {
		return err
	}

	stop := make(chan struct{})
	b.stop = stop

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				b.mu.Lock()
				b.w.Write([]byte("\a"))
				b.mu.Unlock()
			}
		}
	}()

	return nil
}

func (b *TerminalBell) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
}

func (b *TerminalBell) Playing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop != nil
}
