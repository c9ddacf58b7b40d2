package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/skipsilence/skipsilence/internal/config"
	"github.com/skipsilence/skipsilence/internal/engine"
	"github.com/skipsilence/skipsilence/internal/filtergraph"
	"github.com/skipsilence/skipsilence/internal/scrub"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "0:00:00.00"},
		{"sub_minute", 42.5, "0:00:42.50"},
		{"minutes", 83.25, "0:01:23.25"},
		{"hours", 3723.0, "1:02:03.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatTimestamp(tt.seconds)
			if got != tt.want {
				t.Errorf("formatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"seconds", 12500 * time.Millisecond, "12.5s"},
		{"minutes", 125 * time.Second, "2m 5s"},
		{"hours", 3725 * time.Second, "1h 2m 5s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.d)
			if got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "episode.mp4")

	result := &scrub.Result{
		InputPath:  input,
		ScriptPath: scrub.ScriptPath(input),
		Media: engine.MediaInfo{
			FormatName: "mov,mp4,m4a,3gp,3g2,mj2",
			Duration:   90.0,
			HasVideo:   true,
			HasAudio:   true,
		},
		Silences: []filtergraph.Interval{
			{Start: 0, End: 2.5},
			{Start: 10.0, End: 14.0},
			{Start: 84.25, OpenEnd: true},
		},
		Internal:     1,
		MeasuredLUFS: -21.3,
		GainDB:       3.3,
		Graph:        "[0:v]trim=start=0:end=10.25,setpts=PTS-STARTPTS[v1];\n",
	}

	data := ReportData{
		StartTime: time.Now().Add(-3 * time.Second),
		EndTime:   time.Now(),
		Config:    config.Default(),
		Result:    result,
	}

	if err := GenerateReport(data); err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "episode-analysis.log"))
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	report := string(raw)

	for _, want := range []string{
		"Skipsilence Analysis Report",
		"File: episode.mp4",
		"Silence Detection",
		"Detected: 3",
		"Internal: 1",
		"leading, excluded",
		"trailing, excluded",
		"Integrated loudness: -21.3 LUFS",
		"+3.3 dB applied",
		"episode.filter_script",
		result.Graph,
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\nreport:\n%s", want, report)
		}
	}
}
