package cohort

import "errors"

var (
	ErrInvalidGroupExternalID = errors.New("invalid group external id")
	ErrInvalidUsername        = errors.New("invalid username")
	ErrGroupNotFound          = errors.New("group not found")
	ErrSyncRunNotFound        = errors.New("sync run not found")
	ErrSyncRunLocked          = errors.New("another sync run holds the destination lock")
	ErrSourceConnect          = errors.New("source connect failed")
	ErrSourceQuery            = errors.New("source query failed")
)
