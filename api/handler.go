package api

import (
	"net/http"

	"demo_sales/internal/sales"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// salesHandler holds the sales service and implements HTTP handlers for sales operations.
type salesHandler struct {
	salesService *sales.Service
	logger       *zap.Logger
}

// newSalesHandler creates a new sales handler.
func newSalesHandler(salesService *sales.Service, logger *zap.Logger) *salesHandler {
	return &salesHandler{
		salesService: salesService,
		logger:       logger,
	}
}

// handleCreateSale handles the POST /sales/ endpoint.
func (h *salesHandler) handleCreateSale(ctx *gin.Context) {
	in, err := decodeCreateSale(ctx.Request)
	if err != nil {
		respondError(ctx, h.logger, "body", err)
		return
	}

	key, err := h.salesService.CreateSale(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, h.logger, "body", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"key": key})
}

// handleGetSale handles the GET /sales/:key endpoint.
func (h *salesHandler) handleGetSale(ctx *gin.Context) {
	sale, err := h.salesService.GetSale(ctx.Request.Context(), ctx.Param("key"))
	if err != nil {
		respondError(ctx, h.logger, "path", err)
		return
	}

	ctx.JSON(http.StatusOK, sale)
}
