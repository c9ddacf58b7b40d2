// Package logging handles generation of analysis reports for scrubbed files

package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skipsilence/skipsilence/internal/config"
	"github.com/skipsilence/skipsilence/internal/filtergraph"
	"github.com/skipsilence/skipsilence/internal/scrub"
)

// ReportData contains all the information needed to generate an analysis report
type ReportData struct {
	StartTime time.Time
	EndTime   time.Time
	Config    config.Scrub
	Result    *scrub.Result
}

// GenerateReport creates a detailed analysis report and saves it alongside the
// filter script. The report filename will be <input>-analysis.log
func GenerateReport(data ReportData) error {
	input := data.Result.InputPath
	logPath := strings.TrimSuffix(input, filepath.Ext(input)) + "-analysis.log"

	f, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	writeReportHeader(f, data)
	writeConfiguration(f, data.Config)
	writeSilenceDetection(f, data)
	writeLoudness(f, data)
	writeFilterScript(f, data.Result)

	return nil
}

// writeSection outputs a section title with an underline.
func writeSection(f *os.File, title string) {
	fmt.Fprintln(f, title)
	fmt.Fprintln(f, strings.Repeat("-", len(title)))
}

func writeReportHeader(f *os.File, data ReportData) {
	fmt.Fprintln(f, "Skipsilence Analysis Report")
	fmt.Fprintln(f, "===========================")
	fmt.Fprintf(f, "File: %s\n", filepath.Base(data.Result.InputPath))
	fmt.Fprintf(f, "Analysed: %s\n", data.EndTime.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(f, "Container: %s\n", data.Result.Media.FormatName)
	fmt.Fprintf(f, "Duration: %s\n", formatDuration(time.Duration(data.Result.Media.Duration*float64(time.Second))))
	fmt.Fprintf(f, "Analysis time: %s\n", formatDuration(data.EndTime.Sub(data.StartTime)))
	fmt.Fprintln(f, "")
}

// writeConfiguration outputs the tuning parameters the run used, after
// defaults, config file, and flags were merged.
func writeConfiguration(f *os.File, cfg config.Scrub) {
	writeSection(f, "Configuration")

	fmt.Fprintf(f, "Minimum silence duration: %gs\n", cfg.MinSilenceDuration)
	fmt.Fprintf(f, "Margin:                   %gs\n", cfg.Margin)
	fmt.Fprintf(f, "Speedup factor:           %gx\n", cfg.SpeedupFactor)
	fmt.Fprintf(f, "Silence threshold:        %gdB\n", cfg.SilenceThresholdDB)
	fmt.Fprintf(f, "Target loudness:          %g LUFS\n", cfg.TargetLoudnessDB)
	fmt.Fprintln(f, "")
}

// writeSilenceDetection lists every detected silence and whether it was kept
// as an internal fast-forward candidate or excluded as a lead-in/tail-out.
func writeSilenceDetection(f *os.File, data ReportData) {
	writeSection(f, "Silence Detection")

	silences := data.Result.Silences
	if len(silences) == 0 {
		fmt.Fprintln(f, "No silences detected at the configured threshold.")
		fmt.Fprintln(f, "")
		return
	}

	internal := filtergraph.Truncate(silences)

	fmt.Fprintf(f, "Detected: %d\n", len(silences))
	fmt.Fprintf(f, "Internal: %d (leading and trailing silences play at normal speed)\n", len(internal))
	fmt.Fprintln(f, "")

	for i, iv := range silences {
		role := "internal"
		if iv.OpenEnd {
			role = "trailing, excluded"
		} else if len(internal) == 0 || iv.Start < internal[0].Start {
			role = "leading, excluded"
		}

		if iv.OpenEnd {
			fmt.Fprintf(f, "  %2d. %s - end of file (%s)\n", i+1, formatTimestamp(iv.Start), role)
			continue
		}
		fmt.Fprintf(f, "  %2d. %s - %s  %.2fs (%s)\n",
			i+1, formatTimestamp(iv.Start), formatTimestamp(iv.End), iv.End-iv.Start, role)
	}
	fmt.Fprintln(f, "")
}

// writeLoudness outputs the ebur128 measurement and the resulting gain stage.
func writeLoudness(f *os.File, data ReportData) {
	writeSection(f, "Loudness")

	fmt.Fprintf(f, "Integrated loudness: %.1f LUFS\n", data.Result.MeasuredLUFS)
	fmt.Fprintf(f, "Target:              %.1f LUFS\n", data.Config.TargetLoudnessDB)
	if data.Result.GainDB == 0 {
		fmt.Fprintln(f, "Gain:                none (already at target)")
	} else {
		fmt.Fprintf(f, "Gain:                %+.1f dB applied via volume filter\n", data.Result.GainDB)
	}
	fmt.Fprintln(f, "")
}

// writeFilterScript outputs where the script went and the graph itself, so a
// report on its own is enough to reconstruct the run.
func writeFilterScript(f *os.File, result *scrub.Result) {
	writeSection(f, "Filter Script")

	fmt.Fprintf(f, "Written to: %s\n", result.ScriptPath)
	fmt.Fprintf(f, "Apply with: %s\n", result.ApplyCommand())
	fmt.Fprintln(f, "")
	fmt.Fprint(f, result.Graph)
}

// formatTimestamp renders a media position as h:mm:ss.cc for the report.
func formatTimestamp(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := d.Seconds() - float64(int(d.Minutes()))*60
	return fmt.Sprintf("%d:%02d:%05.2f", h, m, s)
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60

	if minutes < 60 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := minutes / 60
	minutes = minutes % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
