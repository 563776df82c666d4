package cohort

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type SyncerConfig struct {
	Groups GroupDefaults
	Users  domain.UserDefaults
}

type Syncer struct {
	connector domain.SourceConnector
	dest      domain.Destination
	runs      domain.SyncRunRepository
	cache     *RunCache
	encoder   DescriptionEncoder
	cfg       SyncerConfig
	log       zerolog.Logger
	now       func() time.Time
}

// NewSyncer wires one sync pipeline. runs may be nil when run history is not kept.
func NewSyncer(connector domain.SourceConnector, dest domain.Destination, runs domain.SyncRunRepository, cache *RunCache, encoder DescriptionEncoder, cfg SyncerConfig, log zerolog.Logger) *Syncer {
	if cache == nil {
		cache = NewRunCache()
	}
	return &Syncer{
		connector: connector,
		dest:      dest,
		runs:      runs,
		cache:     cache,
		encoder:   encoder,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// SyncGroupsFromSource runs one full sync and reports its outcome as an exit code.
func (s *Syncer) SyncGroupsFromSource(ctx context.Context, trace Trace) ExitCode {
	_, err := s.Run(ctx, trace)
	return ExitCodeFor(err)
}

func (s *Syncer) Run(ctx context.Context, trace Trace) (domain.SyncRun, error) {
	if trace == nil {
		trace = nopTrace{}
	}

	release, err := s.cache.Acquire()
	if err != nil {
		return domain.SyncRun{}, err
	}
	defer release()

	run := domain.SyncRun{
		ID:        uuid.NewString(),
		Status:    domain.RunStatusRunning,
		StartedAt: s.now(),
	}
	log := s.log.With().Str("run_id", run.ID).Logger()
	if s.runs != nil {
		if err := s.runs.Start(ctx, run.ID); err != nil {
			if errors.Is(err, domain.ErrSyncRunLocked) {
				log.Warn().Err(err).Msg("cohort synchronisation skipped")
				return domain.SyncRun{}, fmt.Errorf("%w: %v", ErrSyncInProgress, err)
			}
			log.Error().Err(err).Msg("record sync run start failed")
		}
	}

	trace.Output("Starting cohort synchronisation...")
	err = s.sync(ctx, &run, trace, log)
	s.finish(ctx, &run, err, log)
	trace.Finished()

	return run, err
}

func (s *Syncer) sync(ctx context.Context, run *domain.SyncRun, trace Trace, log zerolog.Logger) error {
	source, err := s.connector.Connect(ctx)
	if err != nil {
		trace.Output("Error while communicating with source database")
		if !errors.Is(err, domain.ErrSourceConnect) {
			err = fmt.Errorf("%w: %v", domain.ErrSourceConnect, err)
		}
		return err
	}
	defer func() {
		if err := source.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("close source failed")
		}
	}()
	trace.Output("connected !")

	r := newReconciler(s.dest, s.cache, s.encoder, s.cfg.Groups, s.cfg.Users, &run.Stat, log)
	for record, err := range source.Records(ctx) {
		if err != nil {
			trace.Output(err.Error())
			if !errors.Is(err, domain.ErrSourceQuery) {
				err = fmt.Errorf("%w: %v", domain.ErrSourceQuery, err)
			}
			return err
		}
		r.ProcessRecord(ctx, record)
	}

	trace.Output(fmt.Sprintf("%d records processed, removing stale members...", run.Stat.ProcessedRecords))
	r.PruneStaleMembers(ctx)

	trace.Output("...cohort synchronisation finished.")
	s.cache.Purge()
	return nil
}

func (s *Syncer) finish(ctx context.Context, run *domain.SyncRun, err error, log zerolog.Logger) {
	finishedAt := s.now()
	run.FinishedAt = &finishedAt
	run.ExitCode = int(ExitCodeFor(err))
	run.Status = domain.RunStatusSucceeded
	if err != nil {
		run.Status = domain.RunStatusFailed
		run.ErrorMessage = err.Error()
		log.Error().Err(err).Int("exit_code", run.ExitCode).Msg("cohort synchronisation failed")
	} else {
		log.Info().
			Int64("processed", run.Stat.ProcessedRecords).
			Int("added", len(run.Stat.AddedMembers)).
			Int("removed", len(run.Stat.RemovedMembers)).
			Dur("took", finishedAt.Sub(run.StartedAt)).
			Msg("cohort synchronisation finished")
	}

	if s.runs != nil {
		if err := s.runs.Finish(context.WithoutCancel(ctx), *run); err != nil {
			log.Error().Err(err).Msg("record sync run finish failed")
		}
	}
}
