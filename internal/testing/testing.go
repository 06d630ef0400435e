// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/desertthunder/charmed/internal/services"
)

// MockService is a configurable test double for [services.Service].
type MockService struct {
	mu sync.Mutex

	IsAuthenticated bool
	Playlists       []services.Playlist
	Devices         []services.Device
	PlayErr         error

	Plays   []string
	Volumes []int
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.IsAuthenticated = true
	return nil
}

func (m *MockService) Authenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.IsAuthenticated
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]services.Playlist, error) {
	return m.Playlists, nil
}

func (m *MockService) GetDevices(ctx context.Context) ([]services.Device, error) {
	return m.Devices, nil
}

func (m *MockService) Play(ctx context.Context, contextURI string, volume int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayErr != nil {
		return m.PlayErr
	}
	m.Plays = append(m.Plays, contextURI)
	m.Volumes = append(m.Volumes, volume)
	return nil
}

func (m *MockService) SetVolume(ctx context.Context, volume int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Volumes = append(m.Volumes, volume)
	return nil
}

func (m *MockService) Name() string { return "mock" }

// MockTone is a silent test double for the fallback tone.
type MockTone struct {
	mu      sync.Mutex
	playing bool
	Starts  int
}

func (m *MockTone) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = true
	m.Starts++
	return nil
}

func (m *MockTone) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
}

func (m *MockTone) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}
