package api

import (
	"errors"
	"net/http"

	"demo_sales/internal/imaging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type imageHandler struct {
	maxBytes int64
	logger   *zap.Logger
}

// handleImageSize handles POST /images/size.
func (h *imageHandler) handleImageSize(ctx *gin.Context) {
	payload, err := decodeImageUpload(ctx.Writer, ctx.Request, h.maxBytes)
	if err != nil {
		h.fail(ctx, err)
		return
	}
	defer payload.Close()

	dims, err := imaging.Inspect(payload, h.maxBytes)
	if err != nil {
		h.fail(ctx, err)
		return
	}

	h.logger.Debug("image inspected", zap.Int("width", dims.Width), zap.Int("height", dims.Height), zap.String("format", dims.Format))
	ctx.JSON(http.StatusOK, dims)
}

func (h *imageHandler) fail(ctx *gin.Context, err error) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.Is(err, imaging.ErrTooLarge), errors.As(err, &tooBig):
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"detail": "image too large"})
	case errors.Is(err, imaging.ErrUndecodable):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "unsupported or corrupt image"})
	default:
		respondError(ctx, h.logger, "body", err)
	}
}
