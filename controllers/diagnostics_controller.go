package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/reconcile"
	"github.com/javaloayza/postboard/utils"
)

// DiagnosticsController reports on and resets the local layer.
type DiagnosticsController struct {
	engine     *reconcile.Engine
	OnMutation func()
}

// NewDiagnosticsController creates a new DiagnosticsController instance.
func NewDiagnosticsController(engine *reconcile.Engine) *DiagnosticsController {
	return &DiagnosticsController{engine: engine}
}

// GetDiagnostics returns local post and deleted-id counts with their contents.
func (d *DiagnosticsController) GetDiagnostics(ctx *gin.Context) {
	utils.Success(ctx, d.engine.Diagnostics())
}

// ClearLocalData wipes every local post and deleted id.
func (d *DiagnosticsController) ClearLocalData(ctx *gin.Context) {
	if err := d.engine.ClearAllLocalData(); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, utils.CodeUnwritable, "failed to clear local data")
		return
	}
	if d.OnMutation != nil {
		d.OnMutation()
	}
	utils.Success(ctx, gin.H{"cleared": true})
}
