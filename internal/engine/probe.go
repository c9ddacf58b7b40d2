package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// MediaInfo is the subset of ffprobe output the tool needs.
type MediaInfo struct {
	FormatName string
	Duration   float64
	HasVideo   bool
	HasAudio   bool
	SampleRate int
}

// Probe inspects a media file with ffprobe.
func (e *Engine) Probe(ctx context.Context, path string) (MediaInfo, error) {
	args := []string{"-v", "error", "-show_format", "-show_streams", "-of", "json", path}
	stdout, _, err := e.run(ctx, e.FFprobePath, args...)
	if err != nil {
		return MediaInfo{}, fmt.Errorf("probe %s: %w", path, err)
	}
	return parseProbeOutput([]byte(stdout))
}

// parseProbeOutput decodes the -of json document. ffprobe reports numeric
// format fields as strings.
func parseProbeOutput(data []byte) (MediaInfo, error) {
	var doc struct {
		Format struct {
			FormatName string `json:"format_name"`
			Duration   string `json:"duration"`
		} `json:"format"`
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return MediaInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	info := MediaInfo{FormatName: doc.Format.FormatName}
	info.Duration, _ = strconv.ParseFloat(doc.Format.Duration, 64)

	for _, s := range doc.Streams {
		switch s.CodecType {
		case "video":
			info.HasVideo = true
		case "audio":
			info.HasAudio = true
			if info.SampleRate == 0 {
				info.SampleRate, _ = strconv.Atoi(s.SampleRate)
			}
		}
	}
	return info, nil
}
