package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	httpapi "github.com/arcynforge/forge-backend/internal/api/http"
	"github.com/arcynforge/forge-backend/internal/api/http/middleware"
	"github.com/arcynforge/forge-backend/internal/docstore"
	"github.com/arcynforge/forge-backend/internal/metrics"
	projecthttp "github.com/arcynforge/forge-backend/internal/projects/http"
	jobshttp "github.com/arcynforge/forge-backend/internal/tuningjobs/http"
	"github.com/arcynforge/forge-backend/internal/tuningjobs/lifecycle"
)

type RouterDeps struct {
	DatabaseURLSet bool
	Store          docstore.Store
	Simulator      *lifecycle.Simulator
	Logger         *zap.Logger
	RateLimitRPS   float64
	RateLimitBurst int
}

// BuildRouter assembles the gin engine: recovery, request-id logging,
// metrics and a fully open CORS policy on every route, plus an optional
// per-client rate limit on the resource endpoints.
func BuildRouter(dep RouterDeps) *gin.Engine {
	metrics.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(dep.Logger))
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	meta := httpapi.NewMetaHandler()
	meta.RegisterRoutes(r)

	diag := httpapi.NewDiagHandler(dep.Store, dep.DatabaseURLSet)
	diag.RegisterRoutes(r)

	schemaHandler := httpapi.NewSchemaHandler()
	schemaHandler.RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	if dep.RateLimitRPS > 0 {
		api.Use(middleware.RateLimit(dep.RateLimitRPS, dep.RateLimitBurst))
	}

	projectsHandler := projecthttp.NewHandler(dep.Store, dep.Logger)
	projectsHandler.Register(api.Group("/projects"))

	jobsHandler := jobshttp.NewHandler(dep.Store, dep.Simulator, dep.Logger)
	jobsHandler.Register(api.Group("/tuning-jobs"))

	return r
}

// SetGinMode switches gin to release mode in production; every other
// environment keeps the default debug mode.
func SetGinMode(env string) {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
