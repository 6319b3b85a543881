package api

import (
	"errors"
	"net/http"
	"time"

	"demo_sales/internal/logs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type logsHandler struct {
	recorder *logs.Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// handleQueryLogs handles GET /logs.
func (h *logsHandler) handleQueryLogs(ctx *gin.Context) {
	q, err := decodeLogQuery(ctx.Request, h.now())
	if err != nil {
		if errors.Is(err, logs.ErrInvalidLevel) {
			ctx.JSON(http.StatusBadRequest, gin.H{"detail": "invalid log level"})
			return
		}
		respondError(ctx, h.logger, "query", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": h.recorder.Query(q.Start, q.End, q.Level)})
}
