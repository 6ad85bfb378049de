package routers

import (
	"github.com/gofiber/fiber/v2"

	"reel-processor/internal/delivery/http/handlers"
)

func SetupReelRoutes(app *fiber.App, reelHandler *handlers.ReelHandler) {
	app.Get("/health", reelHandler.Health)
	app.Post("/process", reelHandler.CreateReel)
	// path kept from the first release; multipart uploads only
	app.Post("/create-reel", reelHandler.CreateReel)

	api := app.Group("/api/v1")
	api.Post("/reels", reelHandler.CreateReel)
}
