package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"bilimux/internal/config"
	"bilimux/internal/deps"
	"bilimux/internal/logging"
	"bilimux/internal/media/ffprobe"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	ffmpeg     string
	logLevel   string
	logFormat  string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.configPath))
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.ApplyOverrides(config.Overrides{
			FFmpegBinary: strings.TrimSpace(c.flags.ffmpeg),
			LogLevel:     strings.TrimSpace(c.flags.logLevel),
			LogFormat:    strings.TrimSpace(c.flags.logFormat),
		}); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger(cmd *cobra.Command) (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	})
	return c.logger, c.loggerErr
}

// runContext tags ctx with a fresh run correlation id.
func runContext(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return logging.WithRunID(ctx, id), id
}

// prober returns an ffprobe-backed prober for unknown fragment names when
// probing is enabled and ffprobe can be found, or nil.
func prober(cfg *config.Config, logger *slog.Logger) *ffprobe.Prober {
	if !cfg.FFmpeg.ProbeUnknown {
		return nil
	}
	return lookupProber(cfg, logger)
}

// lookupProber returns a prober for the configured ffprobe, or nil when it
// cannot be found.
func lookupProber(cfg *config.Config, logger *slog.Logger) *ffprobe.Prober {
	binary := deps.ResolveFFprobe(cfg.FFmpegBinary(), cfg.FFprobeBinary())
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFprobe", Command: binary, Optional: true}})
	if len(statuses) == 0 || !statuses[0].Available {
		logger.Debug("ffprobe unavailable", logging.String("binary", binary))
		return nil
	}
	return ffprobe.NewProber(statuses[0].Command)
}

// baseArg returns the base directory argument, defaulting to the working
// directory.
func baseArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

// absDir resolves a positional directory argument.
func absDir(arg string) (string, error) {
	dir, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", arg, err)
	}
	return dir, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
