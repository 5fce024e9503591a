package discovery

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"bilimux/internal/media/ffprobe"
)

type kind int

const (
	kindUnknown kind = iota
	kindVideo
	kindAudio
)

// Prober identifies the stream kind of a fragment whose name does not
// follow a known layout. *ffprobe.Prober satisfies it.
type Prober interface {
	StreamKind(ctx context.Context, path string, skipBytes int) (string, error)
}

// desktopAudioCodes are the stream codes the desktop client uses for audio
// fragments (AAC tiers, Dolby, Hi-Res). Everything else is video.
var desktopAudioCodes = map[string]struct{}{
	"30216": {},
	"30232": {},
	"30280": {},
	"30250": {},
	"30251": {},
	"30255": {},
}

var desktopFragment = regexp.MustCompile(`^\d+-\d+-(\d+)$`)

// classifyName decides the stream kind from the file name alone.
func classifyName(name string) kind {
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	switch stem {
	case "video":
		return kindVideo
	case "audio":
		return kindAudio
	}
	if m := desktopFragment.FindStringSubmatch(stem); m != nil {
		if _, ok := desktopAudioCodes[m[1]]; ok {
			return kindAudio
		}
		return kindVideo
	}
	return kindUnknown
}

func kindFromProbe(value string) kind {
	switch value {
	case ffprobe.KindVideo:
		return kindVideo
	case ffprobe.KindAudio:
		return kindAudio
	default:
		return kindUnknown
	}
}
