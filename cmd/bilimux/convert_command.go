package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bilimux/internal/config"
	"bilimux/internal/convert"
	"bilimux/internal/deps"
	"bilimux/internal/discovery"
	"bilimux/internal/ffmpeg"
	"bilimux/internal/logging"
	"bilimux/internal/preflight"
	"bilimux/internal/runlock"
)

// errItemsFailed makes the process exit non-zero after a run that finished
// but could not convert every item.
var errItemsFailed = errors.New("one or more items failed")

type convertFlags struct {
	audio       bool
	audioOnly   bool
	audioDir    string
	audioFormat string
	noOverwrite bool
}

// options maps command-line choices onto converter options. --audio-only
// wins over --audio.
func (f *convertFlags) options(cfg *config.Config, base string) convert.Options {
	opts := convert.Options{
		Mux:         true,
		AudioDir:    cfg.ResolveAudioDir(base),
		AudioFormat: cfg.Audio.Format,
		Overwrite:   cfg.Output.Overwrite,
	}
	switch {
	case f.audioOnly:
		opts.Mux = false
		opts.Audio = true
	case f.audio:
		opts.Audio = true
	}
	return opts
}

func runConvert(cmd *cobra.Command, ctx *commandContext, flags *convertFlags, args []string) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	base, err := absDir(baseArg(args))
	if err != nil {
		return err
	}
	overrides := config.Overrides{
		AudioDir:    strings.TrimSpace(flags.audioDir),
		AudioFormat: strings.TrimSpace(flags.audioFormat),
		NoOverwrite: flags.noOverwrite,
	}
	if len(args) > 1 {
		if overrides.OutputDir, err = absDir(args[1]); err != nil {
			return err
		}
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return err
	}

	outputDir := cfg.ResolveOutputDir(base)
	opts := flags.options(cfg, base)
	targets := preflight.Targets{BaseDir: base, OutputDir: outputDir}
	if opts.Audio {
		targets.AudioDir = opts.AudioDir
	}
	if err := preflight.Err(preflight.RunAll(cfg, targets)); err != nil {
		return err
	}

	lock, err := runlock.Acquire(config.LockPath(outputDir))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	runCtx, runID := runContext(cmd.Context())
	statuses := deps.CheckBinaries([]deps.Requirement{{Name: "FFmpeg", Command: cfg.FFmpegBinary()}})
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		return fmt.Errorf("ffmpeg unavailable: %s", missing[0].Detail)
	}
	ffmpegBinary := statuses[0].Command
	logging.WithContext(runCtx, logger).Info("conversion started",
		logging.String("base", base),
		logging.String("output", outputDir),
		logging.Bool("mux", opts.Mux),
		logging.Bool("audio", opts.Audio),
		logging.String("run_id", runID),
	)

	scanner := &discovery.Scanner{
		Base:      base,
		OutputDir: outputDir,
		Exclude:   []string{opts.AudioDir},
		Logger:    logger,
	}
	if p := prober(cfg, logger); p != nil {
		scanner.Prober = p
	}
	converter := convert.NewConverter(ffmpeg.NewRunner(ffmpegBinary, logger), opts, logger)
	if opts.Audio && opts.AudioFormat == ffmpeg.FormatAuto {
		if p := lookupProber(cfg, logger); p != nil {
			converter.WithAudioProber(p)
		}
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	observer := convert.Observer{
		Item: func(outcome convert.Outcome) {
			fmt.Fprintln(out, renderOutcomeLine(outcome, colorize))
		},
		Warning: func(err error) {
			fmt.Fprintln(out, renderStatusLine("Ignored", statusWarn, err.Error(), colorize))
		},
	}

	summary, runErr := convert.Run(runCtx, scanner.ItemsContext(runCtx), converter, observer, logger)
	fmt.Fprintln(out, renderSummaryTable(summary))
	logging.WithContext(runCtx, logger).Info("conversion finished",
		logging.Int("converted", summary.Converted),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Int("warnings", summary.Warnings),
		logging.Duration("elapsed", summary.Elapsed),
	)
	if runErr != nil {
		return runErr
	}
	if !summary.OK() {
		return fmt.Errorf("%w: %d of %d", errItemsFailed, summary.Failed, len(summary.Items))
	}
	return nil
}

func renderOutcomeLine(outcome convert.Outcome, colorize bool) string {
	name := outcome.Item.DisplayName
	if outcome.Item.Group != "" {
		name = outcome.Item.Group + " / " + name
	}
	switch outcome.Status {
	case convert.StatusConverted:
		return renderStatusLine(name, statusOK, strings.Join(outcome.Outputs(), ", "), colorize)
	case convert.StatusFailed:
		return renderStatusLine(name, statusError, errorText(outcome.Err), colorize)
	default:
		return renderStatusLine(name, statusWarn, "skipped: "+errorText(outcome.Err), colorize)
	}
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
