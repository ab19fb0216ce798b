package proc

import (
	"fmt"
	"os/exec"
	"strconv"
	"syscall"
	"time"
)

// CaptureSpec describes one arecord invocation.
type CaptureSpec struct {
	Binary   string // defaults to "arecord"
	Device   string // ALSA device, e.g. "plughw:4,0"
	Channels int
	Rate     int
	Format   string // sample format, e.g. "S32_LE"
	Path     string // output wav path
}

func (s CaptureSpec) withDefaults() CaptureSpec {
	if s.Binary == "" {
		s.Binary = "arecord"
	}
	if s.Device == "" {
		s.Device = "plughw:4,0"
	}
	if s.Channels <= 0 {
		s.Channels = 1
	}
	if s.Rate <= 0 {
		s.Rate = 48000
	}
	if s.Format == "" {
		s.Format = "S32_LE"
	}
	if s.Path == "" {
		s.Path = "songrequest.wav"
	}
	return s
}

// Capture is a running capture process. It is owned exclusively by the
// session manager from Start until Stop or Kill.
type Capture struct {
	cmd  *exec.Cmd
	path string
}

// Start spawns the capture process and returns immediately with a running
// handle. The recording keeps going until Stop or Kill.
func Start(spec CaptureSpec) (*Capture, error) {
	spec = spec.withDefaults()

	cmd := exec.Command(spec.Binary,
		"-D", spec.Device,
		"-c"+strconv.Itoa(spec.Channels),
		"-r", strconv.Itoa(spec.Rate),
		"-f", spec.Format,
		spec.Path,
	)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", spec.Binary, err)
	}

	return &Capture{cmd: cmd, path: spec.Path}, nil
}

func (c *Capture) Path() string { return c.path }

// Stop terminates the capture and waits for the process to exit, bounded
// by timeout. On expiry the process is killed and an error returned; the
// recording file may still be partially usable. arecord exits on SIGTERM
// with a non-zero status, so the exit status itself is not inspected.
func (c *Capture) Stop(timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	if err := c.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Already exited; reap it below.
		_ = c.cmd.Process.Kill()
	}

	done := make(chan error, 1)
	go func() { done <- c.cmd.Wait() }()

	select {
	case <-done:
		return c.path, nil
	case <-time.After(timeout):
		_ = c.cmd.Process.Kill()
		<-done
		return c.path, fmt.Errorf("capture did not exit within %s", timeout)
	}
}

// Kill force-stops the capture without waiting for a clean exit.
// Shutdown path only.
func (c *Capture) Kill() {
	_ = c.cmd.Process.Kill()
	_ = c.cmd.Wait()
}
