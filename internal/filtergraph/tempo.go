package filtergraph

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FFmpeg's atempo filter accepts a ratio between 0.5 and 2.0 per instance;
// larger speed changes have to be expressed as a chain of instances.
const (
	minStageRatio = 0.5
	maxStageRatio = 2.0
)

// Factorize decomposes a speed factor into the ordered per-stage ratios of
// an atempo chain. Every ratio lies in [0.5, 2.0] and their product equals
// factor up to floating-point precision.
//
// With n = floor(log2(factor)), the chain is |n| full-octave stages (2.0
// when speeding up, 0.5 when slowing down) plus, when factor is not an exact
// power of two, one remainder stage factor/2^n which lands in (1.0, 2.0) by
// construction. Factorize(1) is the empty chain.
//
// The decomposition is a pure function of factor: the same input always
// produces the same ratio sequence, so the synthesized graph is
// reproducible. A factor of zero or less is a configuration error.
func Factorize(factor float64) ([]float64, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("speedup factor must be positive, got %v", factor)
	}

	n := int(math.Floor(math.Log2(factor)))

	stage := maxStageRatio
	if n < 0 {
		stage = minStageRatio
	}
	count := n
	if count < 0 {
		count = -count
	}

	ratios := make([]float64, 0, count+1)
	for i := 0; i < count; i++ {
		ratios = append(ratios, stage)
	}

	if pow := math.Pow(2, float64(n)); factor != pow {
		ratios = append(ratios, factor/pow)
	}
	return ratios, nil
}

// atempoChain renders the audio tempo stages for one fast-forward segment,
// e.g. ",atempo=2,atempo=1.5" for a 3x speedup. Empty for the unit chain.
func atempoChain(ratios []float64) string {
	var b strings.Builder
	for _, r := range ratios {
		b.WriteString(",atempo=")
		b.WriteString(formatRatio(r))
	}
	return b.String()
}

// setptsChain renders the video timestamp stages mirroring an atempo chain.
// Scaling presentation time by the reciprocal of each audio ratio speeds
// video playback up by the same factor, e.g. ",setpts=0.5*PTS" for a 2x
// stage.
func setptsChain(ratios []float64) string {
	var b strings.Builder
	for _, r := range ratios {
		b.WriteString(",setpts=")
		b.WriteString(formatRatio(1 / r))
		b.WriteString("*PTS")
	}
	return b.String()
}

// formatRatio keeps stage ratios short and stable: six significant digits,
// no trailing zeros.
func formatRatio(r float64) string {
	return strconv.FormatFloat(r, 'g', 6, 64)
}
