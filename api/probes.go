package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Info is what GET /info reports about the running service.
type Info struct {
	Version string
	User    string
}

type probeHandler struct {
	sleep time.Duration
	info  Info
	now   func() time.Time
}

// blockingSleep holds the serving goroutine for the whole duration.
func (h *probeHandler) blockingSleep(ctx *gin.Context) {
	time.Sleep(h.sleep)
	ctx.JSON(http.StatusOK, gin.H{"error": nil})
}

// cooperativeSleep waits on a timer and gives up as soon as the client goes away.
func (h *probeHandler) cooperativeSleep(ctx *gin.Context) {
	timer := time.NewTimer(h.sleep)
	defer timer.Stop()

	select {
	case <-timer.C:
		ctx.JSON(http.StatusOK, gin.H{"error": nil})
	case <-ctx.Request.Context().Done():
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": ctx.Request.Context().Err().Error()})
	}
}

func (h *probeHandler) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"errors": nil})
}

func (h *probeHandler) handleInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"version": h.info.Version,
		"time":    h.now().UTC(),
		"user":    h.info.User,
	})
}

func ping(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "pong",
	})
}
