package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bedrock-chat/backend/internal/features/config/application"
)

// ConfigHandler holds the config service.
type ConfigHandler struct {
	configService application.ConfigService
}

// NewConfigHandler creates a new ConfigHandler.
func NewConfigHandler(configService application.ConfigService) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
	}
}

// GetModelConfigHandler handles fetching the public model configuration.
func (h *ConfigHandler) GetModelConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.configService.ModelConfigView())
}
