package api

import (
	"errors"
	"net/http"

	"demo_sales/internal/sales"
	"demo_sales/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fieldDetail is one entry of a 422 response.
type fieldDetail struct {
	Loc []string `json:"loc"`
	Msg string   `json:"msg"`
}

// validationDetail flattens validation errors into response entries located
// under source ("body", "query", "form").
func validationDetail(source string, err error) ([]fieldDetail, bool) {
	var many validation.Errors
	if errors.As(err, &many) {
		out := make([]fieldDetail, 0, len(many))
		for _, e := range many {
			out = append(out, detailFor(source, e))
		}
		return out, true
	}
	var one *validation.Error
	if errors.As(err, &one) {
		return []fieldDetail{detailFor(source, one)}, true
	}
	return nil, false
}

func detailFor(source string, e *validation.Error) fieldDetail {
	loc := []string{source}
	if e.Field != "" {
		loc = append(loc, e.Field)
	}
	return fieldDetail{Loc: loc, Msg: e.Message}
}

// respondError maps an error to its HTTP status: validation 422, not found 404,
// anything else 500 with a generic body.
func respondError(ctx *gin.Context, logger *zap.Logger, source string, err error) {
	if detail, ok := validationDetail(source, err); ok {
		logger.Warn("request failed validation", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
		return
	}

	switch {
	case errors.Is(err, sales.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"detail": "sale not found"})
	default:
		logger.Error("request failed", zap.String("path", ctx.FullPath()), zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
