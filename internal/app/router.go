package app

import (
	"time"

	"github.com/familyboard/familyboard/handlers"
	"github.com/familyboard/familyboard/internal/config"
	recipehandler "github.com/familyboard/familyboard/internal/recipe/handler"
	recipeservice "github.com/familyboard/familyboard/internal/recipe/service"
	wishhandler "github.com/familyboard/familyboard/internal/wish/handler"
	wishservice "github.com/familyboard/familyboard/internal/wish/service"
	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/familyboard/familyboard/pkg/metrics"
	"github.com/familyboard/familyboard/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
)

// RouterDeps is everything the HTTP layer needs.
type RouterDeps struct {
	Recipes   recipeservice.Service
	Wishes    wishservice.Service
	Static    afero.Fs
	Started   time.Time
	RateLimit config.RateLimitConfig
	// Redis backs the shared limiter when RateLimit.UseRedis is set.
	Redis *redis.Client
	// Registry receives the service collectors; a fresh one is created when nil.
	Registry *prometheus.Registry
}

// NewRouter builds the gin engine with middleware, API routes, docs,
// metrics and the static fallback.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.LoggerWithWriter(logger.Named("http").Writer()))
	r.Use(middleware.Recovery())

	if d.RateLimit.Enabled {
		if d.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(d.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, d.RateLimit.RPS, d.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(d.RateLimit.RPS, d.RateLimit.Burst))
		}
	}

	started := d.Started
	if started.IsZero() {
		started = time.Now()
	}
	handlers.RegisterPing(r, started)
	recipehandler.RegisterRecipeRoutes(r, d.Recipes)
	wishhandler.RegisterWishRoutes(r, d.Wishes)
	handlers.RegisterSwagger(r)

	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics.RegisterCollectors(reg)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	static := d.Static
	if static == nil {
		static = afero.NewMemMapFs()
	}
	handlers.RegisterStatic(r, static)
	return r
}
