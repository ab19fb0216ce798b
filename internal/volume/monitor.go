package volume

import (
	"context"
	log "log/slog"
	"time"

	"tunebox/internal/state"
)

// Monitor is the always-on sensor polling loop. It runs on its own
// goroutine, checks the shared monitoring flag each tick and otherwise
// touches no shared state. Sensor and mixer failures are logged and the
// tick skipped; the loop only stops when ctx is done.
type Monitor struct {
	Sensor Sensor
	Setter Setter
	State  *state.State
	Period time.Duration // defaults to 200ms
}

func (m *Monitor) Run(ctx context.Context) {
	period := m.Period
	if period <= 0 {
		period = 200 * time.Millisecond
	}

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !m.State.MonitoringEnabled() {
			continue
		}

		raw, err := m.Sensor.Read()
		if err != nil {
			log.Warn("Sensor read failed", "err", err)
			continue
		}

		level := Output(raw)
		if err := m.Setter.Set(ctx, level); err != nil {
			log.Warn("Failed to set volume", "level", level, "err", err)
			continue
		}

		log.Debug("Volume", "display", Display(raw), "output", level)
	}
}
