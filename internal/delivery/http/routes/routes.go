package routes

import (
	"mentorhub/internal/config"
	"mentorhub/internal/database"
	"mentorhub/internal/delivery/http/handler"
	"mentorhub/internal/infrastructure/cache"
	"mentorhub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Registry struct {
	cfg    config.Config
	db     database.DB
	cache  *cache.Redis
	hub    *ws.Hub
	logger *zap.Logger

	health *handler.HealthHandler
}

func NewRegistry(cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub, logger *zap.Logger) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		cache:  redisCache,
		hub:    hub,
		logger: logger,
		health: handler.NewHealthHandler(),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.cfg, r.db, r.cache, r.hub, r.logger)
}
