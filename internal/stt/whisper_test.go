package stt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// The transcriber only cares about the collaborator's stdout and exit
// code, so plain shell tools stand in for whisper-cli.

func TestTranscribeCapturesStdout(t *testing.T) {
	tr := &Transcriber{Binary: "echo", Model: "ggml-tiny.en.bin"}

	text, err := tr.Transcribe(context.Background(), "songrequest.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if !strings.Contains(text, "songrequest.wav") {
		t.Fatalf("captured output %q missing the file argument", text)
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatalf("output not trimmed: %q", text)
	}
}

func TestTranscribeEmptyOutputFails(t *testing.T) {
	tr := &Transcriber{Binary: "true", Model: "m"}

	_, err := tr.Transcribe(context.Background(), "songrequest.wav")
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("Transcribe = %v, want ErrEmptyTranscript", err)
	}
}

func TestTranscribeMissingBinaryFails(t *testing.T) {
	tr := &Transcriber{Binary: "/nonexistent/whisper-cli", Model: "m"}

	if _, err := tr.Transcribe(context.Background(), "songrequest.wav"); err == nil {
		t.Fatal("Transcribe succeeded with a missing binary")
	}
}

func TestTranscribeTimeoutIsBounded(t *testing.T) {
	// The shell forks sleep as a child that inherits stdout, so the
	// collaborator's kill alone does not release the pipe. The bound
	// must hold anyway.
	script := filepath.Join(t.TempDir(), "slow-whisper")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	tr := &Transcriber{Binary: script, Model: "m", Timeout: 200 * time.Millisecond}

	start := time.Now()
	_, err := tr.Transcribe(context.Background(), "songrequest.wav")
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Transcribe succeeded despite timeout")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("Transcribe = %v, want timeout error", err)
	}
	if elapsed > 3*time.Second {
		t.Fatalf("Transcribe returned after %s, bound not enforced", elapsed)
	}
}

func TestTranscribeNonZeroExitFails(t *testing.T) {
	tr := &Transcriber{Binary: "false", Model: "m"}

	if _, err := tr.Transcribe(context.Background(), "songrequest.wav"); err == nil {
		t.Fatal("Transcribe succeeded despite non-zero exit")
	}
}
