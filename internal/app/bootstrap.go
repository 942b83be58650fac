package app

import (
	"fmt"
	"strings"

	"skillgap/internal/config"
	"skillgap/internal/delivery/http/middleware"
	"skillgap/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
)

// multipart framing on top of the file itself
const bodyLimitSlack = 1 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	limit := c.Config.Upload.MaxBytes
	if limit <= 0 {
		limit = 10 << 20
	}

	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: int(limit) + bodyLimitSlack,
	})

	registerGlobalMiddleware(f, c)
	routes.NewRegistry(c.Health, c.Handlers, c.AuthMiddleware).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the fiber app. The returned cleanup
// releases the database pool and the cache client.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())
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
