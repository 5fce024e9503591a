package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeAudio()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.AudioDir, err = expandPath(strings.TrimSpace(c.Paths.AudioDir)); err != nil {
		return fmt.Errorf("paths.audio_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	c.FFmpeg.Binary = strings.TrimSpace(c.FFmpeg.Binary)
	if c.FFmpeg.Binary == "" {
		if value, ok := os.LookupEnv("BILIMUX_FFMPEG"); ok && strings.TrimSpace(value) != "" {
			c.FFmpeg.Binary = strings.TrimSpace(value)
		} else {
			c.FFmpeg.Binary = defaultFFmpegBinary
		}
	}
	c.FFmpeg.FFprobeBinary = strings.TrimSpace(c.FFmpeg.FFprobeBinary)
	if c.FFmpeg.FFprobeBinary == "" {
		if value, ok := os.LookupEnv("BILIMUX_FFPROBE"); ok && strings.TrimSpace(value) != "" {
			c.FFmpeg.FFprobeBinary = strings.TrimSpace(value)
		} else {
			c.FFmpeg.FFprobeBinary = defaultFFprobeBinary
		}
	}
}

func (c *Config) normalizeAudio() {
	c.Audio.Format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Audio.Format)), ".")
	if c.Audio.Format == "" {
		c.Audio.Format = defaultAudioFormat
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// ApplyOverrides layers non-empty command-line values onto the loaded
// configuration and re-runs normalization and validation.
func (c *Config) ApplyOverrides(o Overrides) error {
	if o.OutputDir != "" {
		c.Paths.OutputDir = o.OutputDir
	}
	if o.AudioDir != "" {
		c.Paths.AudioDir = o.AudioDir
	}
	if o.FFmpegBinary != "" {
		c.FFmpeg.Binary = o.FFmpegBinary
	}
	if o.AudioFormat != "" {
		c.Audio.Format = o.AudioFormat
	}
	if o.NoOverwrite {
		c.Output.Overwrite = false
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

// Overrides carries command-line values that take precedence over the file.
type Overrides struct {
	OutputDir    string
	AudioDir     string
	FFmpegBinary string
	AudioFormat  string
	NoOverwrite  bool
	LogLevel     string
	LogFormat    string
}
