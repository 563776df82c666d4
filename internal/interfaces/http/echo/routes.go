package echo

import (
	"net/http"

	e "github.com/labstack/echo/v4"
)

func RegisterRoutes(server *e.Echo, syncHandler *SyncHandler) {
	server.GET("/healthz", func(c e.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	if syncHandler == nil {
		return
	}
	server.POST("/api/v1/syncs", syncHandler.RunSync)
	server.GET("/api/v1/syncs/last", syncHandler.LastSync)
}
