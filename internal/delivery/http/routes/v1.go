package routes

import (
	"mentorhub/internal/config"
	"mentorhub/internal/database"
	v1 "mentorhub/internal/delivery/http/routes/v1"
	"mentorhub/internal/infrastructure/cache"
	"mentorhub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func RegisterV1(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub, logger *zap.Logger) {
	if r == nil {
		return
	}

	v1.Register(r, cfg, db, redisCache, hub, logger)
}
