// Package server exposes the assistant over HTTP for the web and mobile
// frontends.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"krishisahay/internal/assistant"
)

// SetupRouter builds the fiber application over the assistant service.
func SetupRouter(svc *assistant.Service, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	h := newHandler(svc, appLogger)

	app.Get("/healthz", h.Health)

	api := app.Group("/api/v1")
	api.Post("/ask", h.Ask)
	api.Get("/weather/:location", h.Weather)
	api.Get("/market/prices", h.MarketPrices)
	api.Get("/market/msp", h.MSP)
	api.Post("/knowledge", h.AddKnowledge)
	api.Get("/dashboard", h.Dashboard)

	return app
}
