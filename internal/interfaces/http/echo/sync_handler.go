package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/mohammadpnp/cohort-sync/internal/application/cohort"
	domain "github.com/mohammadpnp/cohort-sync/internal/domain/cohort"
)

type SyncHandler struct {
	runSync     app.RunSync
	getLastSync app.GetLastSync
}

func NewSyncHandler(runSync app.RunSync, getLastSync app.GetLastSync) *SyncHandler {
	return &SyncHandler{runSync: runSync, getLastSync: getLastSync}
}

// RunSync blocks until the run is over. A run that started and failed still
// carries its statistics in data.
func (h *SyncHandler) RunSync(c echo.Context) error {
	out, err := h.runSync.Execute(c.Request().Context())
	if err != nil {
		if errors.Is(err, app.ErrSyncInProgress) {
			return c.JSON(http.StatusConflict, apiResponse{Error: &errorBody{
				Code:    "sync_in_progress",
				Message: "a cohort sync is already running",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to start cohort sync",
		}})
	}

	if out.Status == domain.RunStatusFailed {
		return c.JSON(http.StatusInternalServerError, apiResponse{Data: out, Error: &errorBody{
			Code:    "sync_failed",
			Message: out.Error,
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *SyncHandler) LastSync(c echo.Context) error {
	out, err := h.getLastSync.Execute(c.Request().Context())
	if err != nil {
		if errors.Is(err, app.ErrNoSyncRun) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "no sync run recorded",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get last sync run",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
