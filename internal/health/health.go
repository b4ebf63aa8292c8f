// Package health serves the liveness endpoint that keeps free-tier
// hosting from idling the bot out.
package health

import "github.com/gofiber/fiber/v2"

// NewApp returns a fiber app with a single liveness route.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app
}
