package app

import (
	"fmt"
	"strings"

	"mentorhub/internal/delivery/http/middleware"
	"mentorhub/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap wires the container into a ready-to-listen fiber app and starts
// the websocket hub.
func Bootstrap(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	routes.NewRegistry(c.Config, c.DB, c.Cache, c.Hub, c.Logger).Register(f)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
