package session

import (
	"errors"
	"testing"
	"time"

	"tunebox/internal/state"
)

type fakeHandle struct {
	path    string
	stopped bool
	killed  bool
}

func (h *fakeHandle) Stop(time.Duration) (string, error) {
	h.stopped = true
	return h.path, nil
}

func (h *fakeHandle) Kill()        { h.killed = true }
func (h *fakeHandle) Path() string { return h.path }

type fakeCapturer struct {
	starts  int
	err     error
	handles []*fakeHandle
}

func (c *fakeCapturer) Start() (Handle, error) {
	c.starts++
	if c.err != nil {
		return nil, c.err
	}
	h := &fakeHandle{path: "songrequest.wav"}
	c.handles = append(c.handles, h)
	return h, nil
}

func TestBeginTwiceFailsSecond(t *testing.T) {
	st := state.New(true)
	cap := &fakeCapturer{}
	m := NewManager(st, cap, time.Second)

	if err := m.Begin(); err != nil {
		t.Fatalf("first Begin: %v", err)
	}
	if err := m.Begin(); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("second Begin = %v, want ErrAlreadyRecording", err)
	}
	if cap.starts != 1 {
		t.Fatalf("capture started %d times, want 1", cap.starts)
	}
	if !st.RecordingActive() {
		t.Fatal("recordingActive cleared by failed second Begin")
	}
}

func TestEndWhenIdleFails(t *testing.T) {
	st := state.New(true)
	m := NewManager(st, &fakeCapturer{}, time.Second)

	if _, err := m.End(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("End = %v, want ErrNotRecording", err)
	}
	if st.RecordingActive() {
		t.Fatal("recordingActive set by failed End")
	}
}

func TestBeginEndRoundTrip(t *testing.T) {
	st := state.New(true)
	cap := &fakeCapturer{}
	m := NewManager(st, cap, time.Second)

	if err := m.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	path, err := m.End()
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if path != "songrequest.wav" {
		t.Fatalf("End path = %q", path)
	}
	if st.RecordingActive() {
		t.Fatal("recordingActive still set after End")
	}
	if m.Last() != path {
		t.Fatalf("Last() = %q, want %q", m.Last(), path)
	}
	if !cap.handles[0].stopped {
		t.Fatal("handle not stopped")
	}
}

func TestBeginPropagatesSpawnError(t *testing.T) {
	st := state.New(true)
	cap := &fakeCapturer{err: errors.New("no such device")}
	m := NewManager(st, cap, time.Second)

	if err := m.Begin(); err == nil {
		t.Fatal("Begin succeeded despite spawn failure")
	}
	if st.RecordingActive() {
		t.Fatal("recordingActive set despite spawn failure")
	}
}

func TestForceStopKillsLiveCapture(t *testing.T) {
	st := state.New(true)
	cap := &fakeCapturer{}
	m := NewManager(st, cap, time.Second)

	if err := m.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	m.ForceStop()
	if st.RecordingActive() {
		t.Fatal("recordingActive still set after ForceStop")
	}
	if !cap.handles[0].killed {
		t.Fatal("handle not killed")
	}
	// Idempotent.
	m.ForceStop()
}
