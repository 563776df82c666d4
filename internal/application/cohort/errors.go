package cohort

import "errors"

var (
	ErrSyncInProgress = errors.New("sync already in progress")
	ErrNoSyncRun      = errors.New("no sync run recorded")
	ErrGetLastSync    = errors.New("failed to get last sync run")
)
