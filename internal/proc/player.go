package proc

import (
	"context"
	"fmt"
	"os/exec"
)

// Player plays a recorded file through aplay, blocking until the process
// exits.
type Player struct {
	Binary string // defaults to "aplay"
	Device string // ALSA device, e.g. "plughw:3,0"
}

func (p Player) Play(ctx context.Context, path string) error {
	bin := p.Binary
	if bin == "" {
		bin = "aplay"
	}

	var args []string
	if p.Device != "" {
		args = append(args, "-D", p.Device)
	}
	args = append(args, path)

	cmd := exec.CommandContext(ctx, bin, args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", bin, path, err)
	}

	return nil
}
