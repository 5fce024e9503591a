package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateFFmpeg() error {
	if strings.TrimSpace(c.FFmpeg.Binary) == "" {
		return errors.New("ffmpeg.binary must be set")
	}
	return nil
}

func (c *Config) validateAudio() error {
	switch c.Audio.Format {
	case AudioFormatAuto, AudioFormatM4A, AudioFormatMP3, AudioFormatFLAC:
		return nil
	default:
		return fmt.Errorf("audio.format must be one of %s, %s, %s, %s (got %q)", AudioFormatAuto, AudioFormatM4A, AudioFormatMP3, AudioFormatFLAC, c.Audio.Format)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}
