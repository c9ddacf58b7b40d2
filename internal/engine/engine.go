// Package engine drives the external ffmpeg and ffprobe binaries that the
// synthesis core treats as black-box collaborators: media probing, silence
// detection, and integrated loudness measurement. Each call either succeeds
// with valid data or fails the whole run; nothing here retries.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Engine holds the resolved paths of the external binaries.
type Engine struct {
	FFmpegPath  string
	FFprobePath string
}

// Locate finds ffmpeg and ffprobe on PATH.
func Locate() (*Engine, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}
	return &Engine{FFmpegPath: ffmpeg, FFprobePath: ffprobe}, nil
}

// run executes one binary and returns stdout and stderr separately. ffmpeg
// writes all filter logging to stderr, so callers parse that stream.
func (e *Engine) run(ctx context.Context, bin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), stderr.String(),
			fmt.Errorf("%s: %w: %s", bin, err, tailLines(stderr.String(), 4))
	}
	return stdout.String(), stderr.String(), nil
}

// tailLines returns the last n non-empty lines of s, for error context.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := make([]string, 0, n)
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, strings.TrimSpace(line))
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, " | ")
}
