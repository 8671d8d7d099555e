package handler

import (
	"traced-greeter/internal/metrics"
	"traced-greeter/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	greeter *service.GreeterService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func New(greeter *service.GreeterService, m *metrics.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		greeter: greeter,
		metrics: m,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/hello", h.Hello)
}

// RegisterMetrics exposes the Prometheus registry on /metrics, behind
// APIKeyAuth when apiKey is set.
func (h *Handler) RegisterMetrics(r *gin.Engine, apiKey string) {
	if h.metrics == nil {
		return
	}
	r.GET("/metrics", APIKeyAuth(apiKey), gin.WrapH(h.metrics.Handler()))
}
