package volume

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Setter applies an output level as a percentage.
type Setter interface {
	Set(ctx context.Context, percent int) error
}

// Amixer sets the ALSA master volume by shelling out to amixer.
type Amixer struct {
	Binary  string // defaults to "amixer"
	Control string // defaults to "Master"
}

func (a Amixer) Set(ctx context.Context, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	bin := a.Binary
	if bin == "" {
		bin = "amixer"
	}
	control := a.Control
	if control == "" {
		control = "Master"
	}

	cmd := exec.CommandContext(ctx, bin, "set", control, strconv.Itoa(percent)+"%")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s set %s: %w, output=%s", bin, control, err, strings.TrimSpace(string(out)))
	}

	return nil
}
