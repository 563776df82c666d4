package cohort

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type GetLastSyncOutput struct {
	RunID      string          `json:"run_id"`
	Status     string          `json:"status"`
	ExitCode   int             `json:"exit_code"`
	Error      string          `json:"error,omitempty"`
	Stat       domain.SyncStat `json:"stat"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
}

type GetLastSync interface {
	Execute(ctx context.Context) (GetLastSyncOutput, error)
}

type getLastSync struct {
	repo domain.SyncRunRepository
}

func NewGetLastSync(repo domain.SyncRunRepository) GetLastSync {
	return &getLastSync{repo: repo}
}

func (uc *getLastSync) Execute(ctx context.Context) (GetLastSyncOutput, error) {
	run, err := uc.repo.Last(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSyncRunNotFound) {
			return GetLastSyncOutput{}, ErrNoSyncRun
		}
		return GetLastSyncOutput{}, fmt.Errorf("%w: %v", ErrGetLastSync, err)
	}

	return GetLastSyncOutput{
		RunID:      run.ID,
		Status:     run.Status,
		ExitCode:   run.ExitCode,
		Error:      run.ErrorMessage,
		Stat:       run.Stat,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
	}, nil
}
