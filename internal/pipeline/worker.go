package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/costcase/internal/casestudy"
	"github.com/dgallion1/costcase/internal/narrative"
	"github.com/dgallion1/costcase/internal/outstore"
	"github.com/dgallion1/costcase/internal/report"
)

// Worker runs generate jobs one at a time.
type Worker struct {
	store outstore.Store
	log   *slog.Logger
	opts  report.Options

	backoff func(attempt int) time.Duration
}

func NewWorker(store outstore.Store, log *slog.Logger, opts report.Options) *Worker {
	if opts.Log == nil {
		opts.Log = log
	}
	return &Worker{store: store, log: log, opts: opts, backoff: Backoff}
}

// Process computes the case study, renders the report and stores it under
// job.Key. The job records each phase; the returned error is the one that
// failed it.
func (w *Worker) Process(ctx context.Context, job *Job, in casestudy.Inputs, p casestudy.Params) error {
	log := w.log.With("job_id", job.ID, "key", job.Key)

	// Phase 1: Compute
	job.SetStatus(StatusComputing, "computing")
	s, err := casestudy.Run(in, p)
	if err != nil {
		return w.fail(log, job, "computing", err)
	}
	log.Info("study computed",
		"plan_volume", s.Inputs.PlanVolume,
		"costs", s.Costs.Total,
		"plan_price", s.Pricing.PlanPrice,
		"break_even", s.Ratios.BreakEvenVolume)

	// Phase 2: Narrate
	job.SetStatus(StatusNarrating, "narrating")
	tree, err := narrative.Render(s)
	if err != nil {
		return w.fail(log, job, "narrating", err)
	}

	// Phase 3: Render
	job.SetStatus(StatusRendering, "rendering")
	data, stats, err := report.Render(ctx, s, tree, w.opts)
	job.SetStats(stats)
	if err != nil {
		return w.fail(log, job, "rendering", err)
	}
	job.ContentHash = ContentHashHex(data)
	log.Info("report rendered", "bytes", len(data), "tables", stats.Tables, "charts", stats.Charts, "content_hash", job.ContentHash)

	// Phase 4: Store, retrying transient faults.
	job.SetStatus(StatusStoring, "storing")
	var info outstore.Info
	for attempt := range MaxRetries {
		job.IncrAttempts()
		info, err = report.Save(ctx, w.store, job.Key, data)
		if err == nil || !IsRetryable(err) {
			break
		}
		log.Warn("retryable store error", "attempt", attempt, "error", err)
		if attempt == MaxRetries-1 {
			break
		}
		select {
		case <-time.After(w.backoff(attempt)):
		case <-ctx.Done():
			err = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if err != nil {
		return w.fail(log, job, "storing", err)
	}
	job.SetStored(info)
	job.SetStatus(StatusCompleted, "done")
	log.Info("report stored", "driver", w.store.Driver(), "key", info.Key, "size", info.Size, "etag", info.ETag)
	return nil
}

func (w *Worker) fail(log *slog.Logger, job *Job, phase string, err error) error {
	log.Error(phase+" failed", "error", err)
	job.AddError(fmt.Sprintf("%s: %s", phase, err))
	job.SetStatus(StatusFailed, phase)
	return fmt.Errorf("%s: %w", phase, err)
}
