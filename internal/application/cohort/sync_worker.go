package cohort

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type SyncWorkerConfig struct {
	Interval time.Duration
}

// SyncWorker triggers a sync run every Interval until its context ends.
type SyncWorker struct {
	runner syncRunner
	trace  func() Trace
	cfg    SyncWorkerConfig
	log    zerolog.Logger

	once sync.Once
}

func NewSyncWorker(runner syncRunner, newTrace func() Trace, cfg SyncWorkerConfig, log zerolog.Logger) *SyncWorker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if newTrace == nil {
		newTrace = func() Trace { return nopTrace{} }
	}

	return &SyncWorker{
		runner: runner,
		trace:  newTrace,
		cfg:    cfg,
		log:    log,
	}
}

func (w *SyncWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		go w.loop(ctx)
	})
}

func (w *SyncWorker) loop(ctx context.Context) {
	for {
		w.RunOnce(ctx)
		if !sleepWithContext(ctx, w.cfg.Interval) {
			return
		}
	}
}

func (w *SyncWorker) RunOnce(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	run, err := w.runner.Run(ctx, w.trace())
	switch {
	case errors.Is(err, ErrSyncInProgress):
		w.log.Info().Msg("scheduled sync skipped: a run is already in progress")
	case err != nil:
		w.log.Error().Err(err).Str("run_id", run.ID).Msg("scheduled sync failed")
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
