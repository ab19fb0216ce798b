package state

import "sync"

// State is the daemon's single shared mutable state. One instance, one
// lock. Most callers go through the accessor methods; the session manager
// locks the struct directly because begin/end must hold the lock across
// the capture process spawn to keep at most one capture alive.
type State struct {
	sync.Mutex

	Recording      bool
	Monitoring     bool
	LastTranscript string
}

func New(monitoring bool) *State {
	return &State{Monitoring: monitoring}
}

func (s *State) RecordingActive() bool {
	s.Lock()
	defer s.Unlock()
	return s.Recording
}

func (s *State) MonitoringEnabled() bool {
	s.Lock()
	defer s.Unlock()
	return s.Monitoring
}

// ToggleMonitoring flips the monitoring flag and reports the new value.
func (s *State) ToggleMonitoring() bool {
	s.Lock()
	defer s.Unlock()
	s.Monitoring = !s.Monitoring
	return s.Monitoring
}

func (s *State) SetTranscript(text string) {
	s.Lock()
	defer s.Unlock()
	s.LastTranscript = text
}

func (s *State) Transcript() string {
	s.Lock()
	defer s.Unlock()
	return s.LastTranscript
}
