package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/repository"

	"github.com/gin-gonic/gin"
)

// Health reports the terminal state store, whether an operator is logged in
// and the club backend's circuit state. The backend is not probed, so an open
// circuit does not make the terminal unhealthy.
func Health(store repository.TerminalStore, session *infra.Session, storeKind string, api *infra.BackendClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if store.Ping(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":      status == http.StatusOK,
			"store":   storeKind,
			"state":   storeStatus,
			"session": session.Authenticated(),
			"backend": api.BreakerState().String(),
		})
	}
}
