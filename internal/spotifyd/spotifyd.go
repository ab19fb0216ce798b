package spotifyd

import (
	"fmt"
	log "log/slog"
	"os/exec"
	"time"
)

// Ensure starts spotifyd if no instance is running yet. The daemon does
// the actual Spotify Connect playback; this process only supervises it.
func Ensure(binary string) error {
	if binary == "" {
		binary = "spotifyd"
	}

	if err := exec.Command("pgrep", "-x", "spotifyd").Run(); err == nil {
		log.Info("spotifyd already running")
		return nil
	}

	cmd := exec.Command(binary, "--no-daemon")
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start spotifyd: %w", err)
	}
	go func() { _ = cmd.Wait() }()

	// Give it a moment to register with the audio stack before the first
	// playback request arrives.
	time.Sleep(2 * time.Second)

	log.Info("spotifyd started", "pid", cmd.Process.Pid)
	return nil
}

// Stop kills any running spotifyd. Best effort.
func Stop() {
	if err := exec.Command("pkill", "-x", "spotifyd").Run(); err != nil {
		log.Debug("pkill spotifyd", "err", err)
	}
}
