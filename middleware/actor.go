package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/utils"
)

const (
	// ContextActorIDKey stores the acting user id in the Gin context.
	ContextActorIDKey = "actor_id"
	// ActorHeader lets a client act as another user id. There is no authentication.
	ActorHeader = "X-Actor-ID"
)

// Actor resolves the acting user from the X-Actor-ID header, defaulting to defaultID.
func Actor(defaultID int) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		actor := defaultID
		if raw := strings.TrimSpace(ctx.GetHeader(ActorHeader)); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil || id < 1 {
				utils.Error(ctx, http.StatusBadRequest, utils.CodeBadActor, "invalid "+ActorHeader+" header")
				ctx.Abort()
				return
			}
			actor = id
		}
		ctx.Set(ContextActorIDKey, actor)
		ctx.Next()
	}
}

// ActorID returns the actor resolved by Actor, or fallback when the middleware did not run.
func ActorID(ctx *gin.Context, fallback int) int {
	if v, ok := ctx.Get(ContextActorIDKey); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return fallback
}
