package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"bilimux/internal/discovery"
	"bilimux/internal/ffmpeg"
	"bilimux/internal/fileutil"
	"bilimux/internal/logging"
	"bilimux/internal/media/ffprobe"
)

var (
	// ErrFilesystem marks an output directory that could not be created.
	ErrFilesystem = errors.New("filesystem error")
	// ErrOutputExists marks an output skipped because overwriting is off.
	ErrOutputExists = errors.New("output already exists")
)

// Runner executes ffmpeg with prepared arguments. *ffmpeg.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, args []string) error
}

// AudioProber reports the codec of an audio fragment. *ffprobe.Prober
// satisfies it.
type AudioProber interface {
	Audio(ctx context.Context, path string, skipBytes int) (ffprobe.AudioInfo, error)
}

// Converter produces the outputs selected by Options for one item at a time.
type Converter struct {
	runner Runner
	prober AudioProber
	opts   Options
	logger *slog.Logger
}

// NewConverter constructs a Converter.
func NewConverter(runner Runner, opts Options, logger *slog.Logger) *Converter {
	return &Converter{
		runner: runner,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "convert"),
	}
}

// WithAudioProber sets the prober used to name audio outputs when the
// format is auto. Without one, auto writes .m4a.
func (c *Converter) WithAudioProber(p AudioProber) *Converter {
	c.prober = p
	return c
}

// Convert runs the selected steps for item. It never panics on per-item
// problems; they are reported in the returned Outcome.
func (c *Converter) Convert(ctx context.Context, item discovery.WorkItem) Outcome {
	ctx = logging.WithItem(ctx, item.DisplayName)
	logger := logging.WithContext(ctx, c.logger)
	start := time.Now()

	outcome := Outcome{Item: item}
	if c.opts.Mux {
		step := c.mux(ctx, logger, item)
		outcome.Steps = append(outcome.Steps, step)
		if isFatal(step.Err) {
			outcome.Elapsed = time.Since(start)
			outcome.finish()
			return outcome
		}
	}
	if c.opts.Audio && ctx.Err() == nil {
		outcome.Steps = append(outcome.Steps, c.audio(ctx, logger, item))
	}
	outcome.Elapsed = time.Since(start)
	outcome.finish()
	return outcome
}

func (c *Converter) mux(ctx context.Context, logger *slog.Logger, item discovery.WorkItem) Step {
	step := Step{Kind: StepMux, Output: item.OutputPath}
	if !item.CanMux() {
		return skipped(logger, step, fmt.Errorf("mux: %w", discovery.ErrMissingFragment))
	}
	args := ffmpeg.MuxArgs(ffmpeg.MuxRequest{
		Video:     item.VideoFragment,
		VideoSkip: item.VideoHeader,
		Audio:     item.AudioFragment,
		AudioSkip: item.AudioHeader,
		Output:    item.OutputPath,
		Overwrite: c.opts.Overwrite,
	})
	return c.run(ctx, logger, step, args)
}

func (c *Converter) audio(ctx context.Context, logger *slog.Logger, item discovery.WorkItem) Step {
	if !item.CanExtractAudio() {
		step := Step{Kind: StepAudio, Output: c.audioPath(item, "")}
		return skipped(logger, step, fmt.Errorf("audio: %w", discovery.ErrMissingFragment))
	}
	info := c.probeAudio(ctx, logger, item)
	step := Step{Kind: StepAudio, Output: c.audioPath(item, info.Codec)}
	var extra []logging.Attr
	if info.Codec != "" {
		extra = append(extra, logging.String("codec", info.Codec))
	}
	if info.DurationSeconds > 0 {
		extra = append(extra, logging.Any("duration_seconds", info.DurationSeconds))
	}
	args := ffmpeg.AudioArgs(ffmpeg.AudioRequest{
		Input:     item.AudioFragment,
		InputSkip: item.AudioHeader,
		Output:    step.Output,
		Format:    c.opts.AudioFormat,
		Overwrite: c.opts.Overwrite,
	})
	return c.run(ctx, logger, step, args, extra...)
}

// probeAudio asks the prober for the fragment's codec when the format is
// auto. A failed probe falls back to .m4a.
func (c *Converter) probeAudio(ctx context.Context, logger *slog.Logger, item discovery.WorkItem) ffprobe.AudioInfo {
	if c.opts.AudioFormat != ffmpeg.FormatAuto || c.prober == nil {
		return ffprobe.AudioInfo{}
	}
	info, err := c.prober.Audio(ctx, item.AudioFragment, item.AudioHeader)
	if err != nil {
		logging.WarnWithContext(logger, "audio codec probe failed", "audio_probe_failed",
			logging.String("fragment", item.AudioFragment),
			logging.Error(err),
			logging.String(logging.FieldImpact, "audio written as .m4a"),
		)
		return ffprobe.AudioInfo{}
	}
	return info
}

// audioPath mirrors the item's output layout under AudioDir, or sits next
// to the muxed file when AudioDir is empty.
func (c *Converter) audioPath(item discovery.WorkItem, codec string) string {
	ext := c.opts.AudioExtension(codec)
	if c.opts.AudioDir == "" {
		return filepath.Join(filepath.Dir(item.OutputPath), item.DisplayName+ext)
	}
	return discovery.OutputPath(c.opts.AudioDir, item.Group, item.DisplayName, ext)
}

func (c *Converter) run(ctx context.Context, logger *slog.Logger, step Step, args []string, extra ...logging.Attr) Step {
	if !c.opts.Overwrite && fileutil.Exists(step.Output) {
		return skipped(logger, step, fmt.Errorf("%s: %w", step.Kind, ErrOutputExists))
	}
	if err := os.MkdirAll(filepath.Dir(step.Output), 0o755); err != nil {
		step.Status = StatusFailed
		step.Err = fmt.Errorf("%w: create output directory: %w", ErrFilesystem, err)
		logging.ErrorWithContext(logger, "cannot create output directory", "output_dir_failed",
			logging.String("path", filepath.Dir(step.Output)),
			logging.Error(err),
		)
		return step
	}

	start := time.Now()
	if err := c.runner.Run(ctx, args); err != nil {
		if rmErr := fileutil.RemoveIfExists(step.Output); rmErr != nil {
			logger.Warn("failed to remove partial output",
				logging.String("output", step.Output),
				logging.Error(rmErr),
			)
		}
		step.Status = StatusFailed
		step.Err = fmt.Errorf("%s: %w", step.Kind, err)
		if ctx.Err() == nil {
			logging.ErrorWithContext(logger, step.Kind+" failed", "ffmpeg_failed",
				logging.String("output", step.Output),
				logging.Error(err),
			)
		}
		return step
	}

	step.Status = StatusConverted
	step.Size = fileutil.Size(step.Output)
	attrs := append([]logging.Attr{
		logging.String("output", step.Output),
		logging.Int64("size_bytes", step.Size),
		logging.Duration("elapsed", time.Since(start)),
	}, extra...)
	logger.Info(step.Kind+" complete", logging.Args(attrs...)...)
	return step
}

func skipped(logger *slog.Logger, step Step, err error) Step {
	step.Status = StatusSkipped
	step.Err = err
	logging.WarnWithContext(logger, step.Kind+" skipped", "step_skipped",
		logging.String("output", step.Output),
		logging.String("reason", err.Error()),
		logging.String(logging.FieldImpact, "output not written"),
	)
	return step
}

func isFatal(err error) bool {
	return errors.Is(err, ErrFilesystem) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
