package engine

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/skipsilence/skipsilence/internal/filtergraph"
)

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?[0-9.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?[0-9.]+)`)
)

// DetectSilences runs the silencedetect filter and returns the ordered
// silence intervals it reports. A silence_start with no matching
// silence_end means the recording goes quiet and never comes back; the
// interval is returned with its open-ended marker set instead of a fake end
// timestamp.
func (e *Engine) DetectSilences(ctx context.Context, path string, thresholdDB, minDuration float64) ([]filtergraph.Interval, error) {
	args := []string{
		"-hide_banner", "-nostats", "-vn",
		"-i", path,
		"-af", fmt.Sprintf("silencedetect=noise=%gdB:d=%g", thresholdDB, minDuration),
		"-f", "null", "-",
	}
	_, stderr, err := e.run(ctx, e.FFmpegPath, args...)
	if err != nil {
		return nil, fmt.Errorf("silence detection on %s: %w", path, err)
	}
	return parseSilences(stderr), nil
}

// parseSilences scans silencedetect log lines. The filter prints
//
//	[silencedetect @ ...] silence_start: 3.2345
//	[silencedetect @ ...] silence_end: 10.23 | silence_duration: 6.9955
//
// interleaved with the rest of ffmpeg's stderr chatter.
func parseSilences(out string) []filtergraph.Interval {
	var (
		silences []filtergraph.Interval
		start    float64
		open     bool
	)

	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if m := silenceStartRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				start = v
				open = true
			}
			continue
		}
		if m := silenceEndRe.FindStringSubmatch(line); m != nil && open {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				silences = append(silences, filtergraph.Interval{Start: start, End: v})
				open = false
			}
		}
	}
	if open {
		silences = append(silences, filtergraph.Interval{Start: start, OpenEnd: true})
	}
	return silences
}
