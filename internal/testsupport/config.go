package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"bilimux/internal/config"
)

// FakeFFmpegScript writes a byte to its last argument, which is the output
// path, or fails when any argument contains "bad".
const FakeFFmpegScript = `#!/bin/sh
last=""
for arg in "$@"; do
	last="$arg"
	case "$arg" in
	*bad*) echo "Invalid data found when processing input" >&2; exit 1 ;;
	esac
done
printf 'x' > "$last"
`

// FakeFFprobeScript reports a single AAC audio stream for any input.
const FakeFFprobeScript = `#!/bin/sh
echo '{"streams":[{"index":0,"codec_name":"aac","codec_type":"audio"}],"format":{"nb_streams":1,"duration":"3.000000"}}'
`

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a normalized default config rooted in a unique temp
// directory. Probing of unknown fragments is off so tests stay independent
// of any ffprobe on PATH.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.FFmpeg.Binary = "ffmpeg"
	cfgVal.FFmpeg.FFprobeBinary = "ffprobe"
	cfgVal.FFmpeg.ProbeUnknown = false

	builder := &configBuilder{
		t:       t,
		baseDir: t.TempDir(),
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAudioFormat sets the audio extraction format on the test config.
func WithAudioFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Audio.Format = format
	}
}

// WithAudioDir sets a dedicated audio output directory under the temp root.
func WithAudioDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.AudioDir = filepath.Join(b.baseDir, name)
	}
}

// WithMissingBinaries points ffmpeg and ffprobe at paths that do not exist.
func WithMissingBinaries() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.FFmpeg.Binary = filepath.Join(b.baseDir, "missing", "ffmpeg")
		b.cfg.FFmpeg.FFprobeBinary = filepath.Join(b.baseDir, "missing", "ffprobe")
	}
}

// WithFakeTools writes FakeFFmpegScript and FakeFFprobeScript into a bin
// directory under the temp root and points the config at them.
func WithFakeTools() ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		b.cfg.FFmpeg.Binary = writeScript(b.t, filepath.Join(binDir, "ffmpeg"), FakeFFmpegScript)
		b.cfg.FFmpeg.FFprobeBinary = writeScript(b.t, filepath.Join(binDir, "ffprobe"), FakeFFprobeScript)
	}
}

// WriteConfig encodes cfg as TOML at path and returns path.
func WriteConfig(t testing.TB, cfg *config.Config, path string) string {
	t.Helper()
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeScript(t testing.TB, path, script string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", filepath.Base(path), err)
	}
	return path
}
