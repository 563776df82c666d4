package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
	"github.com/mohammadpnp/cohort-sync/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// SyncRunRepository records sync runs and serializes them across processes
// with a PostgreSQL advisory lock keyed on the run table name. The lock is
// session scoped, so it is held on a dedicated pool connection from Start to
// Finish and dies with the session if the process crashes.
type SyncRunRepository struct {
	db    *gorm.DB
	table string
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sql.Conn
}

func NewSyncRunRepository(db *gorm.DB, tables models.Tables) *SyncRunRepository {
	return &SyncRunRepository{
		db:    db,
		table: tables.SyncRuns,
		now:   time.Now,
		locks: make(map[string]*sql.Conn),
	}
}

// Start takes the run lock and records the run. It returns
// domain.ErrSyncRunLocked when another session holds the lock.
func (r *SyncRunRepository) Start(ctx context.Context, runID string) error {
	conn, err := r.lock(ctx)
	if err != nil {
		return err
	}

	run := models.SyncRun{
		ID:        runID,
		Status:    domain.RunStatusRunning,
		StartedAt: r.now().UTC(),
	}

	if err := r.db.WithContext(ctx).Table(r.table).Create(&run).Error; err != nil {
		r.unlock(conn)
		return fmt.Errorf("create sync run: %w", err)
	}

	r.mu.Lock()
	r.locks[runID] = conn
	r.mu.Unlock()

	return nil
}

func (r *SyncRunRepository) lock(ctx context.Context) (*sql.Conn, error) {
	sqlDB, err := r.db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("reserve lock connection: %w", err)
	}

	var locked bool
	err = conn.QueryRowContext(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", r.table).Scan(&locked)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("acquire sync run lock: %w", err)
	}
	if !locked {
		_ = conn.Close()
		return nil, domain.ErrSyncRunLocked
	}

	return conn, nil
}

// unlock releases the advisory lock and returns the connection to the pool.
// A connection whose unlock failed is discarded so the session ends.
func (r *SyncRunRepository) unlock(conn *sql.Conn) {
	_, err := conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock(hashtext($1))", r.table)
	if err != nil {
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	}
	_ = conn.Close()
}

func (r *SyncRunRepository) release(runID string) {
	r.mu.Lock()
	conn, ok := r.locks[runID]
	delete(r.locks, runID)
	r.mu.Unlock()

	if ok {
		r.unlock(conn)
	}
}

// Finish records the outcome and releases the run lock, even when the update fails.
func (r *SyncRunRepository) Finish(ctx context.Context, run domain.SyncRun) error {
	defer r.release(run.ID)

	finishedAt := r.now().UTC()
	if run.FinishedAt != nil {
		finishedAt = run.FinishedAt.UTC()
	}

	var errMessage *string
	if run.ErrorMessage != "" {
		errMessage = &run.ErrorMessage
	}

	row := models.SyncRun{
		Status:         run.Status,
		ExitCode:       run.ExitCode,
		ProcessedCount: run.Stat.ProcessedRecords,
		SkippedCount:   run.Stat.SkippedRecords,
		AddedCount:     int64(len(run.Stat.AddedMembers)),
		RemovedCount:   int64(len(run.Stat.RemovedMembers)),
		FailedCount:    failedCount(run.Stat),
		Stat:           run.Stat,
		ErrorMessage:   errMessage,
		FinishedAt:     &finishedAt,
	}

	result := r.db.WithContext(ctx).
		Table(r.table).
		Where("id = ?", run.ID).
		Select("status", "exit_code", "processed_count", "skipped_count", "added_count",
			"removed_count", "failed_count", "stat", "error_message", "finished_at").
		Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("finish sync run: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSyncRunNotFound
	}

	return nil
}

func (r *SyncRunRepository) Last(ctx context.Context) (domain.SyncRun, error) {
	var row models.SyncRun

	err := r.db.WithContext(ctx).
		Table(r.table).
		Order("started_at DESC").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.SyncRun{}, domain.ErrSyncRunNotFound
		}
		return domain.SyncRun{}, fmt.Errorf("get last sync run: %w", err)
	}

	run := domain.SyncRun{
		ID:         row.ID,
		Status:     row.Status,
		ExitCode:   row.ExitCode,
		Stat:       row.Stat,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
	}
	if row.ErrorMessage != nil {
		run.ErrorMessage = *row.ErrorMessage
	}

	return run, nil
}

func failedCount(stat domain.SyncStat) int64 {
	return int64(len(stat.FailedGroups) + len(stat.FailedUsers) + len(stat.FailedMembers) + len(stat.FailedRemovals))
}
