package volume

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"tunebox/internal/state"
)

type fixedSensor struct{ v float64 }

func (s fixedSensor) Read() (float64, error) { return s.v, nil }

type countingSetter struct {
	calls atomic.Int64
	last  atomic.Int64
}

func (c *countingSetter) Set(_ context.Context, percent int) error {
	c.calls.Add(1)
	c.last.Store(int64(percent))
	return nil
}

const testPeriod = 5 * time.Millisecond

func TestMonitorSkipsTicksWhileDisabled(t *testing.T) {
	st := state.New(false)
	set := &countingSetter{}
	mon := &Monitor{Sensor: fixedSensor{0.5}, Setter: set, State: st, Period: testPeriod}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	time.Sleep(12 * testPeriod)
	if n := set.calls.Load(); n != 0 {
		t.Fatalf("setter invoked %d times while monitoring disabled", n)
	}
}

func TestMonitorAppliesMappedLevelWhileEnabled(t *testing.T) {
	st := state.New(true)
	set := &countingSetter{}
	mon := &Monitor{Sensor: fixedSensor{1.0}, Setter: set, State: st, Period: testPeriod}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mon.Run(ctx)

	deadline := time.Now().Add(time.Second)
	for set.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("setter never invoked while monitoring enabled")
		}
		time.Sleep(testPeriod)
	}
	if got := set.last.Load(); got != 100 {
		t.Fatalf("applied level = %d, want 100", got)
	}

	// Disabling must flatten the invocation count after at most one
	// in-flight tick.
	st.ToggleMonitoring()
	time.Sleep(4 * testPeriod)
	before := set.calls.Load()
	time.Sleep(8 * testPeriod)
	if after := set.calls.Load(); after != before {
		t.Fatalf("setter invoked %d more times after disabling", after-before)
	}
}
