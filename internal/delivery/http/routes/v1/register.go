package v1

import (
	"mentorhub/internal/config"
	"mentorhub/internal/database"
	"mentorhub/internal/delivery/http/handler"
	"mentorhub/internal/delivery/http/middleware"
	"mentorhub/internal/infrastructure/cache"
	"mentorhub/internal/pkg/jwt"
	"mentorhub/internal/repository"
	"mentorhub/internal/usecase"
	"mentorhub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, redisCache *cache.Redis, hub *ws.Hub, logger *zap.Logger) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)
	rateLimitMw := middleware.NewRateLimitMiddleware(redisCache, cfg.RateLimit, logger)

	accountRepo := repository.NewPostgresAccountRepository(db)
	authUC := usecase.NewAuthUsecase(accountRepo, jwtSvc, logger)
	authHandler := handler.NewAuthHandler(authUC)

	directoryRepo := repository.NewPostgresDirectoryRepository(db)
	mentorshipRepo := repository.NewPostgresMentorshipRepository(db)
	matchUC := usecase.NewMatchUsecase(directoryRepo, mentorshipRepo, redisCache, ws.NewNotifier(hub), logger)
	matchHandler := handler.NewMatchHandler(matchUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Everything below the gate requires a valid admin token.
	admin := r.Group("", authMw.Middleware(), authMw.AdminOnly(), rateLimitMw.Middleware())

	mentorships := admin.Group("/mentorships")
	matchHandler.RegisterRoutes(mentorships)

	wsHandler := ws.NewHandler(hub, logger)
	mentorships.Get("/ws", wsHandler.HandleMentorshipsWS)
}
