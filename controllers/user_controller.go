package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/reconcile"
	"github.com/javaloayza/postboard/utils"
)

// UserController serves remote users with default-user fallback.
type UserController struct {
	engine *reconcile.Engine
}

func NewUserController(engine *reconcile.Engine) *UserController {
	return &UserController{engine: engine}
}

// ListUsers returns every remote user, or an empty list when the remote is down.
func (u *UserController) ListUsers(ctx *gin.Context) {
	utils.Success(ctx, u.engine.GetUsers(ctx.Request.Context()))
}

// GetUser returns the user, synthesizing a default one when the lookup fails.
func (u *UserController) GetUser(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}
	user := u.engine.GetUser(ctx.Request.Context(), id)
	utils.Success(ctx, gin.H{
		"user":           user,
		"initials":       reconcile.Initials(user.Name),
		"avatarFallback": reconcile.AvatarFallbackURL(user.Name),
	})
}
