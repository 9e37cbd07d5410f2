package app

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/library-duty-api/api/swagger"
	"github.com/noah-isme/library-duty-api/internal/handler"
	internalmiddleware "github.com/noah-isme/library-duty-api/internal/middleware"
	"github.com/noah-isme/library-duty-api/internal/service"
	"github.com/noah-isme/library-duty-api/pkg/config"
	"github.com/noah-isme/library-duty-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/library-duty-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/library-duty-api/pkg/middleware/requestid"
)

// RouterDeps collects what the router mounts.
type RouterDeps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *service.MetricsService
	Duty    *handler.DutyScheduleHandler
	Ops     *handler.MetricsHandler
}

// NewRouter wires middleware and routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.Logger))
	r.Use(corsmiddleware.New(deps.Config.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(deps.Metrics))

	r.GET("/health", deps.Ops.Health)
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Ops.Prometheus)
	}
	if deps.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.Config.APIPrefix)
	duty := api.Group("/duty-schedules")
	duty.POST("/generate", deps.Duty.Generate)
	duty.GET("/:term", deps.Duty.Get)
	duty.GET("/:term/audit", deps.Duty.Audit)

	return r
}
