package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/assessment"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/evidence"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/intake"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondPipelineError maps the pipeline error taxonomy onto HTTP statuses.
// Raw upstream error bodies and keys never reach the caller; only these
// sanitized message classes do.
func respondPipelineError(c *gin.Context, err error) {
	var validErr *intake.ValidationError
	if errors.As(err, &validErr) {
		respondError(c, http.StatusBadRequest, validErr.Error())
		return
	}

	switch {
	case errors.Is(err, evidence.ErrNotConfigured):
		respondError(c, http.StatusInternalServerError, "medical search service not configured")

	case errors.Is(err, assessment.ErrNotConfigured):
		respondError(c, http.StatusInternalServerError, "AI service not configured")

	case service.IsRateLimited(err):
		respondError(c, http.StatusTooManyRequests, "service temporarily unavailable, please try again in a moment")

	default:
		respondError(c, http.StatusInternalServerError, "failed to process medical assessment, please try again")
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return false
	}

	return true
}
