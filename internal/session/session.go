package session

import (
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"tunebox/internal/state"
	"tunebox/pkg/audioinfo"
)

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no active recording")
)

// Capturer starts one capture process. Split out so tests can substitute
// a fake instead of spawning arecord.
type Capturer interface {
	Start() (Handle, error)
}

// CaptureFunc adapts a plain start function to the Capturer interface.
type CaptureFunc func() (Handle, error)

func (f CaptureFunc) Start() (Handle, error) { return f() }

// Handle is a live capture process.
type Handle interface {
	Stop(timeout time.Duration) (string, error)
	Kill()
	Path() string
}

// Manager owns the single allowed in-flight capture. Begin and End hold
// the shared state lock for their whole duration, including the process
// spawn, so that concurrent dispatches from the console and the bus can
// never end up with two live captures.
type Manager struct {
	st      *state.State
	cap     Capturer
	timeout time.Duration

	handle Handle // non-nil exactly while st.Recording
	last   string // path of the last completed recording
}

func NewManager(st *state.State, cap Capturer, stopTimeout time.Duration) *Manager {
	return &Manager{st: st, cap: cap, timeout: stopTimeout}
}

// Begin starts a capture. A Begin while one is already running reports
// ErrAlreadyRecording and changes nothing.
func (m *Manager) Begin() error {
	m.st.Lock()
	defer m.st.Unlock()

	if m.st.Recording {
		return ErrAlreadyRecording
	}

	h, err := m.cap.Start()
	if err != nil {
		return fmt.Errorf("start capture: %w", err)
	}

	m.handle = h
	m.st.Recording = true
	return nil
}

// End stops the capture and remembers the recording path. A termination
// failure still leaves the session Idle; the file may be partially
// usable, so the path is returned alongside the error.
func (m *Manager) End() (string, error) {
	m.st.Lock()
	defer m.st.Unlock()

	if !m.st.Recording {
		return "", ErrNotRecording
	}

	path, err := m.handle.Stop(m.timeout)
	m.handle = nil
	m.st.Recording = false
	m.last = path

	if err != nil {
		return path, fmt.Errorf("stop capture: %w", err)
	}

	if dur, derr := audioinfo.Duration(path); derr == nil {
		log.Info("Recording saved", "file", path, "dur", dur.Round(time.Millisecond))
	} else {
		log.Info("Recording saved", "file", path)
	}

	return path, nil
}

func (m *Manager) Active() bool {
	return m.st.RecordingActive()
}

// Last returns the path of the most recent completed recording, or ""
// when nothing has been recorded yet.
func (m *Manager) Last() string {
	m.st.Lock()
	defer m.st.Unlock()
	return m.last
}

// ForceStop kills any live capture. Shutdown path only.
func (m *Manager) ForceStop() {
	m.st.Lock()
	defer m.st.Unlock()

	if m.handle == nil {
		return
	}
	m.handle.Kill()
	m.handle = nil
	m.st.Recording = false
}
