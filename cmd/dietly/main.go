package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/Dietly/app/repository"
	"github.com/ManuelReschke/Dietly/internal/pkg/cache"
	"github.com/ManuelReschke/Dietly/internal/pkg/database"
	"github.com/ManuelReschke/Dietly/internal/pkg/env"
	"github.com/ManuelReschke/Dietly/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "5000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	repository.InitializeFactory(database.GetDB())
	cache.SetupCache()

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "Dietly",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// the React frontend runs on its own origin
	app.Use(cors.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "admin"),
		},
	}), monitor.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Dietly backend is running")
	})

	// ROUTER
	router.InstallRouter(app)

	return app
}
