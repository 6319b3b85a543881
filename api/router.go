package api

import (
	"time"

	"demo_sales/internal/logs"
	"demo_sales/internal/sales"
	"demo_sales/internal/survey"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Sales         *sales.Service
	Logger        *zap.Logger
	Logs          *logs.Recorder
	Info          Info
	StaticDir     string
	MaxImageBytes int64
	SleepDuration time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// InitRoutes registers every endpoint on the given Gin engine.
func InitRoutes(e *gin.Engine, deps Dependencies) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	e.Use(requestLogger(logger))

	salesHandler := newSalesHandler(deps.Sales, logger)
	e.POST("/sales", salesHandler.handleCreateSale)
	e.POST("/sales/", salesHandler.handleCreateSale)
	e.GET("/sales/:key", salesHandler.handleGetSale)

	probes := &probeHandler{sleep: deps.SleepDuration, info: deps.Info, now: now}
	e.GET("/sleep/sys", probes.blockingSleep)
	e.GET("/sleep/async-sys", probes.blockingSleep)
	e.GET("/sleep/async-aio", probes.cooperativeSleep)
	e.GET("/health", probes.handleHealth)
	e.GET("/info", probes.handleInfo)
	e.GET("/ping", ping)

	images := &imageHandler{maxBytes: deps.MaxImageBytes, logger: logger}
	e.POST("/images/size", images.handleImageSize)

	surveys := &surveyHandler{decoder: survey.NewDecoder(), logger: logger}
	e.POST("/survey", surveys.handleSurvey)

	if deps.Logs != nil {
		logsHandler := &logsHandler{recorder: deps.Logs, logger: logger, now: now}
		e.GET("/logs", logsHandler.handleQueryLogs)
	}

	if deps.StaticDir != "" {
		e.Static("/static", deps.StaticDir)
	}
}
