package bus

import (
	"context"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"localhost:1883", "tcp://localhost:1883"},
		{"tcp://localhost:1883", "tcp://localhost:1883"},
		{"mqtt://broker.local:1883", "mqtt://broker.local:1883"},
		{"ssl://broker.local:8883", "ssl://broker.local:8883"},
	}

	for _, tc := range cases {
		if got := normalizeAddr(tc.in); got != tc.want {
			t.Errorf("normalizeAddr(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDialUnreachableBrokerFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	// Port 1 refuses immediately; Dial must give up when ctx expires and
	// tear the retrying connection manager down rather than leak it.
	_, err := Dial(ctx, Config{Addr: "tcp://127.0.0.1:1", ClientID: "test"}, nil)
	if err == nil {
		t.Fatal("Dial succeeded against an unreachable broker")
	}
}
