package engine

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

var integratedRe = regexp.MustCompile(`I:\s*(-?[0-9.]+)\s*LUFS`)

// MeasureLoudness returns the integrated loudness of the audio track in
// LUFS, read from the ebur128 summary that ffmpeg prints at end of stream.
func (e *Engine) MeasureLoudness(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-hide_banner", "-nostats", "-vn",
		"-i", path,
		"-filter_complex", "ebur128",
		"-f", "null", "-",
	}
	_, stderr, err := e.run(ctx, e.FFmpegPath, args...)
	if err != nil {
		return 0, fmt.Errorf("loudness measurement on %s: %w", path, err)
	}
	return parseIntegratedLoudness(stderr)
}

// parseIntegratedLoudness extracts the integrated loudness figure. ebur128
// prints momentary I: values during the run and the final figure in the
// summary block, so the last match wins.
func parseIntegratedLoudness(out string) (float64, error) {
	matches := integratedRe.FindAllStringSubmatch(out, -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no integrated loudness in ebur128 output")
	}
	v, err := strconv.ParseFloat(matches[len(matches)-1][1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse integrated loudness: %w", err)
	}
	return v, nil
}
