package cohort

import (
	"errors"

	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type ExitCode int

const (
	ExitCodeSuccess       ExitCode = 0
	ExitCodeSourceConnect ExitCode = 1
	// ExitCodeSetup covers failures outside the sync pass itself, such as an
	// unreadable configuration or an unreachable destination store.
	ExitCodeSetup      ExitCode = 2
	ExitCodeBusy       ExitCode = 3
	ExitCodeSourceRead ExitCode = 4
)

func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, domain.ErrSourceConnect):
		return ExitCodeSourceConnect
	case errors.Is(err, domain.ErrSourceQuery):
		return ExitCodeSourceRead
	case errors.Is(err, ErrSyncInProgress):
		return ExitCodeBusy
	default:
		return ExitCodeSetup
	}
}
