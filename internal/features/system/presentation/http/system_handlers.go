package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bedrock-chat/backend/internal/version"
)

// ServiceName is the default name reported by the version endpoint.
const ServiceName = "bedrock-chat"

// SystemHandler serves dependency-free operational endpoints.
type SystemHandler struct {
	serviceName string
}

// NewSystemHandler creates a SystemHandler that reports serviceName from the
// version endpoint. An empty serviceName falls back to ServiceName.
func NewSystemHandler(serviceName string) *SystemHandler {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &SystemHandler{
		serviceName: serviceName,
	}
}

// HealthHandler always reports ok; it does not touch the model provider.
func (h *SystemHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// VersionHandler reports the service name with the build metadata from the version package.
func (h *SystemHandler) VersionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, version.Get(h.serviceName))
}

// MetricsHandler exposes the default Prometheus registry.
func (h *SystemHandler) MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
