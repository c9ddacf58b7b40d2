// Package config carries the tuning parameters for silence scrubbing.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Scrub holds every knob the synthesis engine reads. Values come from the
// built-in defaults, then an optional TOML file, then command-line flags,
// and are validated once before any engine work starts.
type Scrub struct {
	// MinSilenceDuration is the shortest stretch, in seconds, that the
	// detector reports as silence.
	MinSilenceDuration float64 `toml:"min_silence_duration"`

	// Margin is the guard band, in seconds, kept at normal speed on each
	// side of a silence so the speed change is not perceptible at the
	// transition.
	Margin float64 `toml:"margin"`

	// SpeedupFactor is how many times faster silent stretches play back.
	SpeedupFactor float64 `toml:"speedup_factor"`

	// SilenceThresholdDB is the level below which audio counts as silent.
	SilenceThresholdDB float64 `toml:"silence_threshold_db"`

	// TargetLoudnessDB is the integrated loudness the output is normalised
	// to, in LUFS. Zero disables normalisation only when the input already
	// measures exactly zero; use a sensible negative target.
	TargetLoudnessDB float64 `toml:"target_loudness_db"`
}

// Default returns the podcast-tuned default configuration.
func Default() Scrub {
	return Scrub{
		MinSilenceDuration: 2.0,
		Margin:             0.25,
		SpeedupFactor:      8.0,
		SilenceThresholdDB: -35.0,
		TargetLoudnessDB:   -18.0,
	}
}

// Load reads a TOML config file over the given base configuration.
// Unknown keys are rejected so a typo in the file surfaces instead of
// silently falling back to a default.
func Load(path string, base Scrub) (Scrub, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration invariants. A violation is fatal before
// any synthesis work: a margin of at least half the minimum silence
// duration would make the two guard bands of one silence overlap and
// produce a negative-length fast segment.
func (c Scrub) Validate() error {
	if c.MinSilenceDuration <= 0 {
		return fmt.Errorf("minimum silence duration must be positive, got %v", c.MinSilenceDuration)
	}
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %v", c.Margin)
	}
	if c.Margin >= c.MinSilenceDuration/2 {
		return fmt.Errorf("margin %v must be less than half the minimum silence duration %v",
			c.Margin, c.MinSilenceDuration)
	}
	if c.SpeedupFactor <= 0 {
		return fmt.Errorf("speedup factor must be positive, got %v", c.SpeedupFactor)
	}
	if c.TargetLoudnessDB > 0 {
		return fmt.Errorf("target loudness must not be positive, got %v dB", c.TargetLoudnessDB)
	}
	return nil
}
