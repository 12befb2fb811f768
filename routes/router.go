package routes

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/javaloayza/postboard/config"
	"github.com/javaloayza/postboard/controllers"
	"github.com/javaloayza/postboard/metrics"
	"github.com/javaloayza/postboard/middleware"
	"github.com/javaloayza/postboard/projector"
	"github.com/javaloayza/postboard/reconcile"
	"github.com/javaloayza/postboard/utils"
)

// Deps are the collaborators the HTTP layer is built on.
type Deps struct {
	Config   config.AppConfig
	Engine   *reconcile.Engine
	View     *projector.Projector
	Debounce *projector.Debouncer
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.ActorHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		// credentials cannot be combined with a wildcard origin
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestMetrics())

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// keep the stateful view in step with mutations made through the API
	refreshView := func() {
		if deps.View != nil {
			go deps.View.Refresh(context.Background())
		}
	}

	postController := controllers.NewPostController(deps.Engine)
	postController.OnMutation = refreshView
	userController := controllers.NewUserController(deps.Engine)
	diagnosticsController := controllers.NewDiagnosticsController(deps.Engine)
	diagnosticsController.OnMutation = refreshView
	configController := controllers.NewConfigController(cfg)

	api := r.Group("/api/v1")
	api.Use(middleware.Actor(cfg.CurrentUserID), middleware.RateLimit(cfg.RateLimitPerMinute))

	api.GET("/config/client", configController.GetClientConfig)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:id", postController.GetPost)
	postsGroup.POST("", postController.CreatePost)
	postsGroup.PUT("/:id", postController.UpdatePost)
	postsGroup.DELETE("/:id", postController.DeletePost)

	api.GET("/users", userController.ListUsers)
	api.GET("/users/:id", userController.GetUser)

	api.GET("/diagnostics", diagnosticsController.GetDiagnostics)
	api.DELETE("/local-data", diagnosticsController.ClearLocalData)

	if deps.View != nil {
		viewController := controllers.NewViewController(deps.View, deps.Debounce)
		viewGroup := api.Group("/view")
		viewGroup.GET("", viewController.GetView)
		viewGroup.POST("/search", viewController.Search)
		if deps.Debounce != nil {
			viewGroup.POST("/input", viewController.Input)
		}
		viewGroup.POST("/page/:n", viewController.GoToPage)
		viewGroup.POST("/next", viewController.NextPage)
		viewGroup.POST("/previous", viewController.PreviousPage)
		viewGroup.POST("/refresh", viewController.Refresh)
	}

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, utils.CodeNotFound, "api route not found")
	})

	return r
}
