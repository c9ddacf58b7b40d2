// Package filtergraph synthesizes the FFmpeg filter_complex description that
// fast-forwards silent stretches of a recording while keeping a short guard
// margin at each silence boundary at normal speed.
package filtergraph

// Interval is one detected silence, in seconds from the start of the media.
// OpenEnd marks a trailing silence that runs to the end of the media
// (silencedetect reported a start but no matching end); End carries no
// meaning when it is set.
type Interval struct {
	Start   float64
	End     float64
	OpenEnd bool
}

// Truncate returns the subsequence of detected silences that are internal to
// the recording. A leading silence (start at or before zero) is absorbed by
// the opening normal-speed segment and an open-ended trailing silence by the
// closing one, so neither gets its own fast-forward pair. The result is a
// view into the input, never a copy; an interval that is both leading and
// trailing is dropped once, and an empty result is valid.
func Truncate(silences []Interval) []Interval {
	lo, hi := 0, len(silences)
	if hi > lo && silences[lo].Start <= 0 {
		lo++
	}
	if hi > lo && silences[hi-1].OpenEnd {
		hi--
	}
	return silences[lo:hi]
}
