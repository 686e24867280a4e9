package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/paintlab/ai-image-studio/internal/config"
	"github.com/paintlab/ai-image-studio/internal/http/handlers"
	"github.com/paintlab/ai-image-studio/internal/http/middleware"
)

type Router struct {
	imageHandler *handlers.ImageHandler
	logger       *zap.Logger
	config       *config.Config
}

func NewRouter(
	imageHandler *handlers.ImageHandler,
	logger *zap.Logger,
	config *config.Config,
) *Router {
	return &Router{
		imageHandler: imageHandler,
		logger:       logger,
		config:       config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = r.config.Upload.MaxFileSize

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(r.logger))
	router.Use(middleware.ErrorHandler(r.logger))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// API version 1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", r.imageHandler.HealthCheck)

		v1.POST("/generate", r.imageHandler.Generate)
		v1.POST("/inpaint", r.imageHandler.Inpaint)
		v1.POST("/erase", r.imageHandler.Erase)
	}

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"message": "AI image studio is running",
		})
	})

	return router
}
