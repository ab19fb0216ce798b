package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

var ErrEmptyTranscript = errors.New("empty transcript")

// Transcriber runs whisper-cli against a recorded file and captures the
// transcript from its standard output.
type Transcriber struct {
	Binary  string        // whisper-cli executable
	Model   string        // ggml model path
	Timeout time.Duration // whole-run bound, defaults to 60s
}

// Transcribe invokes the transcription binary with the fixed model and
// no-timestamps arguments. It fails on a non-zero exit, on timeout, and
// on empty output.
func (t *Transcriber) Transcribe(ctx context.Context, audioFile string) (string, error) {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.Binary, "-m", t.Model, "-f", audioFile, "-nt")

	var out bytes.Buffer
	cmd.Stdout = &out

	// A collaborator child that inherited stdout keeps the pipe open
	// after the kill; without this the wait outlives the deadline by as
	// long as the child runs.
	cmd.WaitDelay = timeout

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("transcription timed out after %s", timeout)
		}
		return "", fmt.Errorf("run %s: %w", t.Binary, err)
	}

	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", ErrEmptyTranscript
	}

	return text, nil
}
