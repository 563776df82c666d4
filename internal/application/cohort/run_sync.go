package cohort

import (
	"context"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type RunSyncOutput struct {
	RunID    string          `json:"run_id"`
	Status   string          `json:"status"`
	ExitCode int             `json:"exit_code"`
	Error    string          `json:"error,omitempty"`
	Stat     domain.SyncStat `json:"stat"`
}

type RunSync interface {
	Execute(ctx context.Context) (RunSyncOutput, error)
}

type syncRunner interface {
	Run(ctx context.Context, trace Trace) (domain.SyncRun, error)
}

type runSync struct {
	runner syncRunner
	trace  func() Trace
}

// NewRunSync runs a sync synchronously per call. newTrace may be nil.
func NewRunSync(runner syncRunner, newTrace func() Trace) RunSync {
	if newTrace == nil {
		newTrace = func() Trace { return nopTrace{} }
	}
	return &runSync{runner: runner, trace: newTrace}
}

// Execute only returns an error when the run could not start. A run that
// started and failed is reported through the output status and exit code.
func (uc *runSync) Execute(ctx context.Context) (RunSyncOutput, error) {
	run, err := uc.runner.Run(ctx, uc.trace())
	if run.ID == "" {
		return RunSyncOutput{}, err
	}

	out := RunSyncOutput{
		RunID:    run.ID,
		Status:   run.Status,
		ExitCode: run.ExitCode,
		Stat:     run.Stat,
	}
	if err != nil {
		out.Error = err.Error()
	}
	return out, nil
}
