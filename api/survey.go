package api

import (
	"net/http"

	"demo_sales/internal/survey"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// surveyThanksPath is where a successful submission is sent.
const surveyThanksPath = "/static/thanks.html"

type surveyHandler struct {
	decoder *survey.Decoder
	logger  *zap.Logger
}

// handleSurvey handles POST /survey.
func (h *surveyHandler) handleSurvey(ctx *gin.Context) {
	resp, err := decodeSurvey(ctx.Request, h.decoder)
	if err != nil {
		respondError(ctx, h.logger, "form", err)
		return
	}

	h.logger.Info("survey received",
		zap.String("name", resp.Name),
		zap.String("email", resp.Email),
		zap.Int("rating", resp.Rating),
		zap.String("comments", resp.Comments),
	)
	ctx.Redirect(http.StatusSeeOther, surveyThanksPath)
}
