package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/metrics"
)

func NewRouter(cfg *config.Config, h *DiagnosisHandler, collector *metrics.Collector, log *zap.Logger) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(log),
		Metrics(collector),
		CORS(cfg.CORS),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	r.POST("/diagnose", RateLimit(cfg.RateLimit, collector), h.Diagnose)
	r.OPTIONS("/diagnose", h.Options)

	return r
}
