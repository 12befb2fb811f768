package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/config"
	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/utils"
)

// ConfigController serves the settings a client needs to render the view.
type ConfigController struct {
	cfg config.AppConfig
}

func NewConfigController(cfg config.AppConfig) *ConfigController { return &ConfigController{cfg: cfg} }

// GetClientConfig returns page size, debounce period and identity defaults.
func (c *ConfigController) GetClientConfig(ctx *gin.Context) {
	utils.Success(ctx, gin.H{
		"itemsPerPage":     projector.ItemsPerPage,
		"searchDebounceMs": c.cfg.SearchDebounceMs,
		"currentUserId":    c.cfg.CurrentUserID,
		"localIdFloor":     models.LocalIDFloor,
		"remoteBaseUrl":    c.cfg.RemoteBaseURL,
	})
}
