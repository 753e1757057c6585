package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"github.com/kotashimizu/care-plan/internal/handlers"
	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/middleware"
)

type RouterConfig struct {
	Log             *logger.Logger
	CORSOrigins     []string
	PlanHandler     *handlers.PlanHandler
	QualityHandler  *handlers.QualityHandler
	ValidateHandler *handlers.ValidateHandler
	ExportHandler   *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(cfg.Log))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/generate-options", cfg.PlanHandler.GenerateOptions)
		api.POST("/generate-plan", cfg.PlanHandler.GeneratePlan)
		api.POST("/quality-check", cfg.QualityHandler.QualityCheck)
		api.POST("/validate-interview", cfg.ValidateHandler.ValidateInterview)
		api.POST("/export-pdf", cfg.ExportHandler.ExportPDF)
	}

	return router
}
