package convert

import (
	"strings"

	"bilimux/internal/ffmpeg"
)

// Options selects what Converter produces for each item.
type Options struct {
	// Mux writes <OutputPath>.mp4 from the video and audio fragments.
	Mux bool
	// Audio writes an audio-only file.
	Audio bool
	// AudioDir is where audio files go. Empty places them next to the
	// muxed output.
	AudioDir string
	// AudioFormat is one of auto, m4a, mp3, flac.
	AudioFormat string
	// Overwrite replaces existing outputs; otherwise they are skipped.
	Overwrite bool
}

// DefaultOptions muxes only, overwriting existing files.
func DefaultOptions() Options {
	return Options{Mux: true, AudioFormat: ffmpeg.FormatAuto, Overwrite: true}
}

// AudioExtension returns the file extension for the configured format.
// codec only matters for FormatAuto, where AAC and an unknown codec map to
// .m4a and anything else is named after the codec.
func (o Options) AudioExtension(codec string) string {
	switch o.AudioFormat {
	case ffmpeg.FormatMP3:
		return ".mp3"
	case ffmpeg.FormatFLAC:
		return ".flac"
	case ffmpeg.FormatAuto:
		codec = strings.ToLower(strings.TrimSpace(codec))
		if codec == "" || codec == "aac" {
			return ".m4a"
		}
		return "." + codec
	default:
		return ".m4a"
	}
}
