package convert

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"time"

	"bilimux/internal/discovery"
	"bilimux/internal/logging"
)

// ItemConverter converts a single item. *Converter satisfies it.
type ItemConverter interface {
	Convert(ctx context.Context, item discovery.WorkItem) Outcome
}

// Observer receives progress while Run consumes the sequence. Either field
// may be nil.
type Observer struct {
	Item    func(Outcome)
	Warning func(error)
}

// Run consumes items sequentially. Malformed items count as warnings and
// the run continues. It returns early with a non-nil error when the base
// directory is unreadable, an output directory cannot be created, or ctx
// is cancelled; the returned Summary covers everything processed so far.
func Run(ctx context.Context, items iter.Seq2[discovery.WorkItem, error], converter ItemConverter, observer Observer, logger *slog.Logger) (Summary, error) {
	logger = logging.NewComponentLogger(logger, "convert")
	start := time.Now()
	var summary Summary
	finish := func(err error) (Summary, error) {
		summary.Elapsed = time.Since(start)
		return summary, err
	}

	for item, err := range items {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return finish(ctxErr)
		}
		if err != nil {
			if errors.Is(err, discovery.ErrUnreadableBase) {
				return finish(err)
			}
			summary.Warnings++
			logging.WarnWithContext(logging.WithContext(ctx, logger), "item ignored", "discovery_malformed",
				logging.Error(err),
			)
			if observer.Warning != nil {
				observer.Warning(err)
			}
			continue
		}

		outcome := converter.Convert(ctx, item)
		summary.add(outcome)
		if observer.Item != nil {
			observer.Item(outcome)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return finish(ctxErr)
		}
		if errors.Is(outcome.Err, ErrFilesystem) {
			return finish(outcome.Err)
		}
	}
	return finish(ctx.Err())
}
