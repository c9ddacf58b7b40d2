// Package scrub runs the full pipeline for one file: probe the media,
// measure loudness, detect silences, synthesize the filter graph, and write
// the script next to the input. The core synthesis stays a pure computation;
// everything stateful lives in the engine collaborators.
package scrub

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skipsilence/skipsilence/internal/config"
	"github.com/skipsilence/skipsilence/internal/engine"
	"github.com/skipsilence/skipsilence/internal/filtergraph"
)

// ScriptExtension is appended to the input's base name for the output
// artifact consumed by ffmpeg's -filter_complex_script option.
const ScriptExtension = ".filter_script"

// ProgressFunc receives coarse pipeline progress, in the same shape the UI
// consumes: pass number, pass name, and completion within the pass.
type ProgressFunc func(pass int, passName string, progress float64)

// Result is everything one file run produced.
type Result struct {
	InputPath  string
	ScriptPath string
	Media      engine.MediaInfo

	Silences []filtergraph.Interval // as detected, before truncation
	Internal int                    // silences that got a fast-forward pair

	MeasuredLUFS float64
	GainDB       float64

	Graph string
}

// ScriptPath returns where the filter script for an input file is written.
func ScriptPath(inputPath string) string {
	return strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ScriptExtension
}

// File processes one input end to end and writes the filter script. The
// configuration is validated first: a configuration error is fatal before
// any engine invocation, and no partial output is ever written.
func File(ctx context.Context, eng *engine.Engine, cfg config.Scrub, inputPath string, progress ProgressFunc) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := func(pass int, name string, p float64) {
		if progress != nil {
			progress(pass, name, p)
		}
	}

	report(1, "Probing", 0)
	media, err := eng.Probe(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	if !media.HasVideo || !media.HasAudio {
		return nil, fmt.Errorf("%s: need one video and one audio stream (video:%v audio:%v)",
			inputPath, media.HasVideo, media.HasAudio)
	}
	report(1, "Probing", 1)

	report(2, "Measuring", 0)
	measured, err := eng.MeasureLoudness(ctx, inputPath)
	if err != nil {
		return nil, err
	}
	report(2, "Measuring", 1)

	report(3, "Detecting", 0)
	silences, err := eng.DetectSilences(ctx, inputPath, cfg.SilenceThresholdDB, cfg.MinSilenceDuration)
	if err != nil {
		return nil, err
	}
	report(3, "Detecting", 1)

	report(4, "Synthesizing", 0)
	gain := filtergraph.Gain(measured, cfg.TargetLoudnessDB)
	graph, err := filtergraph.Build(silences, cfg.Margin, cfg.SpeedupFactor, gain)
	if err != nil {
		return nil, err
	}

	scriptPath := ScriptPath(inputPath)
	if err := os.WriteFile(scriptPath, []byte(graph), 0o644); err != nil {
		return nil, fmt.Errorf("write filter script: %w", err)
	}
	report(4, "Synthesizing", 1)

	return &Result{
		InputPath:    inputPath,
		ScriptPath:   scriptPath,
		Media:        media,
		Silences:     silences,
		Internal:     len(filtergraph.Truncate(silences)),
		MeasuredLUFS: measured,
		GainDB:       gain,
		Graph:        graph,
	}, nil
}

// OutputName suggests a name for the scrubbed rendition of the input.
func (r *Result) OutputName() string {
	ext := filepath.Ext(r.InputPath)
	return strings.TrimSuffix(r.InputPath, ext) + "-scrubbed" + ext
}

// ApplyCommand returns the ffmpeg invocation that applies the written
// script to the input. The script text is handed to the engine verbatim.
func (r *Result) ApplyCommand() string {
	return fmt.Sprintf("ffmpeg -i %q -filter_complex_script %q -map \"[v]\" -map \"[a]\" %q",
		r.InputPath, r.ScriptPath, r.OutputName())
}
