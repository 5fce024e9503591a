package ffprobe

import (
	"context"
	"fmt"
	"strings"
)

// Prober classifies media files with an ffprobe binary.
type Prober struct {
	Binary string
}

// NewProber returns a Prober invoking binary, or "ffprobe" from PATH when empty.
func NewProber(binary string) *Prober {
	return &Prober{Binary: binary}
}

// StreamKind returns KindAudio or KindVideo for the file at path.
func (p *Prober) StreamKind(ctx context.Context, path string, skipBytes int) (string, error) {
	result, err := Inspect(ctx, p.Binary, path, skipBytes)
	if err != nil {
		return "", err
	}
	kind := result.Kind()
	if kind == "" {
		return "", fmt.Errorf("ffprobe %s: %d video and %d audio streams", path, result.VideoStreamCount(), result.AudioStreamCount())
	}
	return kind, nil
}

// AudioInfo describes the first audio stream of a probed file.
type AudioInfo struct {
	Codec           string
	DurationSeconds float64
}

// Audio returns the codec of the first audio stream in path along with the
// container duration.
func (p *Prober) Audio(ctx context.Context, path string, skipBytes int) (AudioInfo, error) {
	result, err := Inspect(ctx, p.Binary, path, skipBytes)
	if err != nil {
		return AudioInfo{}, err
	}
	for _, stream := range result.Streams {
		if strings.EqualFold(stream.CodecType, KindAudio) {
			return AudioInfo{
				Codec:           strings.ToLower(strings.TrimSpace(stream.CodecName)),
				DurationSeconds: result.DurationSeconds(),
			}, nil
		}
	}
	return AudioInfo{}, fmt.Errorf("ffprobe %s: no audio stream", path)
}
