package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"bilimux/internal/config"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("BILIMUX_FFMPEG", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "bilimux", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.FFmpegBinary() != "ffmpeg" {
		t.Fatalf("expected default ffmpeg binary, got %q", cfg.FFmpegBinary())
	}
	if cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("expected default ffprobe binary, got %q", cfg.FFprobeBinary())
	}
	if cfg.Audio.Format != config.AudioFormatAuto {
		t.Fatalf("expected auto audio default, got %q", cfg.Audio.Format)
	}
	if !cfg.Output.Overwrite {
		t.Fatal("expected overwrite enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "bilimux.toml")

	type payload struct {
		Paths struct {
			OutputDir string `toml:"output_dir"`
		} `toml:"paths"`
		FFmpeg struct {
			Binary string `toml:"binary"`
		} `toml:"ffmpeg"`
		Audio struct {
			Format string `toml:"format"`
		} `toml:"audio"`
	}
	custom := payload{}
	custom.Paths.OutputDir = filepath.Join(tempDir, "out")
	custom.FFmpeg.Binary = "/opt/ffmpeg/bin/ffmpeg"
	custom.Audio.Format = "MP3"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected ffmpeg override, got %q", cfg.FFmpegBinary())
	}
	if cfg.Audio.Format != config.AudioFormatMP3 {
		t.Fatalf("expected audio format normalized to mp3, got %q", cfg.Audio.Format)
	}
	if got := cfg.ResolveOutputDir("/ignored"); got != custom.Paths.OutputDir {
		t.Fatalf("expected configured output dir, got %q", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bilimux.toml")
	if err := os.WriteFile(configPath, []byte("[ffmpeg]\nbinaryy = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvFallbackForFFmpegBinary(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BILIMUX_FFMPEG", "/usr/local/bin/ffmpeg7")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.FFmpegBinary() != "/usr/local/bin/ffmpeg7" {
		t.Fatalf("expected env ffmpeg binary, got %q", cfg.FFmpegBinary())
	}
}

func TestResolveOutputAndAudioDirs(t *testing.T) {
	cfg := config.Default()
	base := filepath.Join("data", "download")

	out := cfg.ResolveOutputDir(base)
	if out != filepath.Join(base, "bili_video_output") {
		t.Fatalf("unexpected default output dir %q", out)
	}
	if got := cfg.ResolveAudioDir(base); got != filepath.Join(base, "bili_audio_output") {
		t.Fatalf("unexpected default audio dir %q", got)
	}
	cfg.Paths.AudioDir = "/music"
	if got := cfg.ResolveAudioDir(base); got != "/music" {
		t.Fatalf("expected audio dir override, got %q", got)
	}
	if got := config.LockPath(out); got != filepath.Join(out, ".bilimux.lock") {
		t.Fatalf("unexpected lock path %q", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.FFmpeg.Binary = "ffmpeg"
	cfg.FFmpeg.FFprobeBinary = "ffprobe"

	err := cfg.ApplyOverrides(config.Overrides{
		AudioDir:    "~/music",
		AudioFormat: "flac",
		NoOverwrite: true,
		LogLevel:    "DEBUG",
		LogFormat:   "json",
	})
	if err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}
	if !filepath.IsAbs(cfg.Paths.AudioDir) || !strings.HasSuffix(cfg.Paths.AudioDir, "music") {
		t.Fatalf("expected expanded audio dir, got %q", cfg.Paths.AudioDir)
	}
	if cfg.Audio.Format != config.AudioFormatFLAC {
		t.Fatalf("expected flac, got %q", cfg.Audio.Format)
	}
	if cfg.Output.Overwrite {
		t.Fatal("expected overwrite disabled")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging overrides: %+v", cfg.Logging)
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Audio.Format != config.AudioFormatAuto {
		t.Fatalf("unexpected sample audio format %q", cfg.Audio.Format)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty ffmpeg", func(c *config.Config) { c.FFmpeg.Binary = "" }, "ffmpeg.binary"},
		{"bad audio format", func(c *config.Config) { c.FFmpeg.Binary = "ffmpeg"; c.Audio.Format = "ogg" }, "audio.format"},
		{"bad log level", func(c *config.Config) { c.FFmpeg.Binary = "ffmpeg"; c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("expected validation error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
