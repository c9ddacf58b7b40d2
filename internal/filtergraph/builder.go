package filtergraph

import (
	"fmt"
	"strconv"
	"strings"
)

// segmentBounds are the four timestamps cut around one internal silence: the
// normal-speed segment leading up to it and the fast-forwarded span inside
// it. The guard margin at each end of the silence stays inside the
// normal-speed segments.
type segmentBounds struct {
	beforeFrom, beforeTo float64
	duringFrom, duringTo float64
}

// splitBoundaries computes the cut points for one silence relative to the
// end of the previous normal-speed segment and returns the advanced cursor.
// The config invariant margin < minimum_silence_duration/2 guarantees
// duringTo > duringFrom for every silence the detector can report; a shorter
// interval (detector inconsistency) passes through unchanged rather than
// failing here.
func splitBoundaries(cursor float64, iv Interval, margin float64) (segmentBounds, float64) {
	sb := segmentBounds{
		beforeFrom: cursor,
		beforeTo:   iv.Start + margin,
	}
	sb.duringFrom = sb.beforeTo
	sb.duringTo = iv.End - margin
	return sb, sb.duringTo
}

// Builder accumulates the filter stages for one recording. Each internal
// silence contributes a numbered before/during stage pair on both the video
// and audio input; Render closes the graph with the trailing pass-through
// pair and the final concat stage.
type Builder struct {
	margin float64
	ratios []float64

	cursor float64
	pairs  int
	video  []string
	audio  []string
	concat []string
}

// NewBuilder returns a builder for the given guard margin and speedup
// factor. The speedup factor is decomposed once via Factorize; a
// non-positive factor is rejected here, before any stage is emitted.
func NewBuilder(margin, speedup float64) (*Builder, error) {
	ratios, err := Factorize(speedup)
	if err != nil {
		return nil, err
	}
	return &Builder{margin: margin, ratios: ratios}, nil
}

// AddSilence appends the stage pair for one internal silence. Pairs are
// numbered in call order: pair k produces node 2k-1 for the normal-speed
// segment before the silence and node 2k for the fast-forwarded span inside
// it. Callers must add silences in chronological order; node numbering is
// what lets the concat stage reconstruct the original timeline.
func (b *Builder) AddSilence(iv Interval) {
	bounds, cursor := splitBoundaries(b.cursor, iv, b.margin)
	b.cursor = cursor
	b.pairs++

	before := b.pairs*2 - 1
	during := b.pairs * 2

	b.video = append(b.video,
		fmt.Sprintf("[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS[v%d];",
			formatSeconds(bounds.beforeFrom), formatSeconds(bounds.beforeTo), before),
		fmt.Sprintf("[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS%s[v%d];",
			formatSeconds(bounds.duringFrom), formatSeconds(bounds.duringTo), setptsChain(b.ratios), during),
	)
	b.audio = append(b.audio,
		fmt.Sprintf("[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a%d];",
			formatSeconds(bounds.beforeFrom), formatSeconds(bounds.beforeTo), before),
		fmt.Sprintf("[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS%s[a%d];",
			formatSeconds(bounds.duringFrom), formatSeconds(bounds.duringTo), atempoChain(b.ratios), during),
	)
	b.concat = append(b.concat,
		fmt.Sprintf("[v%d][a%d][v%d][a%d]", before, before, during, during))
}

// Render closes the graph and returns the full filter_complex text. The
// trailing pass-through pair (node 2N+1, trim open-ended to the end of the
// media) is appended, then the concat stage over all N+1 groups. When
// gainDB is nonzero the concat audio output is labelled [an] and a final
// volume stage from [an] to [a] is emitted; otherwise the concat writes [a]
// directly. Render does not mutate the builder, so the same accumulated
// state always renders identical text.
func (b *Builder) Render(gainDB float64) string {
	tail := b.pairs*2 + 1

	lines := make([]string, 0, len(b.video)+len(b.audio)+3)
	lines = append(lines, b.video...)
	lines = append(lines,
		fmt.Sprintf("[0:v]trim=start=%s,setpts=PTS-STARTPTS[v%d];", formatSeconds(b.cursor), tail))
	lines = append(lines, b.audio...)
	lines = append(lines,
		fmt.Sprintf("[0:a]atrim=start=%s,asetpts=PTS-STARTPTS[a%d];", formatSeconds(b.cursor), tail))

	groups := make([]string, 0, b.pairs+1)
	groups = append(groups, b.concat...)
	groups = append(groups, fmt.Sprintf("[v%d][a%d]", tail, tail))

	audioOut := "[a]"
	if gainDB != 0 {
		audioOut = "[an]"
	}
	concatLine := fmt.Sprintf("%s concat=n=%d:v=1:a=1[v]%s",
		strings.Join(groups, " "), tail, audioOut)

	if gainDB != 0 {
		concatLine += ";"
		lines = append(lines, concatLine, volumeStage(gainDB))
	} else {
		lines = append(lines, concatLine)
	}

	return strings.Join(lines, "\n") + "\n"
}

// Build synthesizes the complete graph text for an ordered silence sequence:
// truncate away boundary silences, emit one stage pair per remaining
// silence, close with the trailing pair, concat, and the optional gain
// stage. Zero internal silences degenerate to a single full-length
// pass-through pair, which is still a legal graph.
func Build(silences []Interval, margin, speedup, gainDB float64) (string, error) {
	b, err := NewBuilder(margin, speedup)
	if err != nil {
		return "", err
	}
	for _, iv := range Truncate(silences) {
		b.AddSilence(iv)
	}
	return b.Render(gainDB), nil
}

// formatSeconds renders a timestamp with the shortest decimal representation
// that round-trips, matching what the engine parses back.
func formatSeconds(t float64) string {
	return strconv.FormatFloat(t, 'f', -1, 64)
}
