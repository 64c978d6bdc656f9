package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/assessment"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/intake"
)

// Diagnoser is the pipeline capability the handler depends on.
type Diagnoser interface {
	Diagnose(ctx context.Context, patient *intake.PatientIntake) (*assessment.Result, error)
}

type DiagnosisHandler struct {
	svc     Diagnoser
	timeout time.Duration
	log     *zap.Logger
}

func NewDiagnosisHandler(svc Diagnoser, timeout time.Duration, log *zap.Logger) *DiagnosisHandler {
	return &DiagnosisHandler{svc: svc, timeout: timeout, log: log}
}

// Diagnose handles POST /diagnose. The deadline spans the whole pipeline, so
// backoff sleeps and upstream calls cannot exceed the configured budget.
func (h *DiagnosisHandler) Diagnose(c *gin.Context) {
	var patient intake.PatientIntake
	if !bindJSON(c, &patient) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.svc.Diagnose(ctx, &patient)
	if err != nil {
		h.log.Error("diagnosis pipeline failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Options answers CORS preflight for development clients. Headers are set by
// the CORS middleware; this only pins the 200 status.
func (h *DiagnosisHandler) Options(c *gin.Context) {
	c.Status(http.StatusOK)
}
