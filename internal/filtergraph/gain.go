package filtergraph

import "fmt"

// Gain returns the dB adjustment that moves a measured integrated loudness
// to the target. Zero means no normalisation stage is appended and the
// concat stage writes [a] directly.
func Gain(measuredDB, targetDB float64) float64 {
	return targetDB - measuredDB
}

// volumeStage renders the loudness-normalisation stage that reads the
// concat audio output [an] and writes the terminal [a] label.
func volumeStage(gainDB float64) string {
	return fmt.Sprintf("[an]volume=%.1fdB[a]", gainDB)
}
