package state

import "testing"

func TestToggleMonitoring(t *testing.T) {
	st := New(true)
	if !st.MonitoringEnabled() {
		t.Fatal("monitoring not enabled at start")
	}
	if on := st.ToggleMonitoring(); on {
		t.Fatal("toggle reported enabled, want disabled")
	}
	if st.MonitoringEnabled() {
		t.Fatal("monitoring still enabled after toggle")
	}
	if on := st.ToggleMonitoring(); !on {
		t.Fatal("toggle reported disabled, want enabled")
	}
}

func TestTranscriptRoundTrip(t *testing.T) {
	st := New(false)
	if st.Transcript() != "" {
		t.Fatal("transcript not empty at start")
	}
	st.SetTranscript("play creep by radiohead")
	if st.Transcript() != "play creep by radiohead" {
		t.Fatalf("transcript = %q", st.Transcript())
	}
}
