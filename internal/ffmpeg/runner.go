package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"bilimux/internal/logging"
)

var commandContext = exec.CommandContext

const (
	stderrTailLines = 8
	waitDelay       = 5 * time.Second
)

// ExitError reports a non-zero ffmpeg exit.
type ExitError struct {
	Binary   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Binary, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error { return e.Err }

// Runner executes ffmpeg with prepared arguments.
type Runner struct {
	binary string
	logger *slog.Logger
}

// NewRunner constructs a Runner. An empty binary means "ffmpeg" from PATH.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{binary: binary, logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

// Binary returns the executable the runner invokes.
func (r *Runner) Binary() string { return r.binary }

// Run executes ffmpeg and blocks until it exits. Cancelling ctx kills the
// process; the returned error then wraps ctx.Err().
func (r *Runner) Run(ctx context.Context, args []string) error {
	cmd := commandContext(ctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	r.logger.Debug("running ffmpeg", logging.String("command", r.binary+" "+strings.Join(args, " ")))
	start := time.Now()
	err := cmd.Run()
	if err == nil {
		r.logger.Debug("ffmpeg finished", logging.Duration("elapsed", time.Since(start)))
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("ffmpeg interrupted: %w", ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Binary:   r.binary,
			ExitCode: exitErr.ExitCode(),
			Stderr:   tail(stderr.String(), stderrTailLines),
			Err:      err,
		}
	}
	return fmt.Errorf("start %s: %w", r.binary, err)
}

func tail(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
