package controller

import (
	"github.com/benbeisheim/minitchess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// SetupRoutes mounts the REST API under /api and the analysis socket at
// /ws/analysis.
func SetupRoutes(app *fiber.App, ac *AnalysisController, wsc *WebSocketController, wsConfig websocket.Config) {
	app.Use(middleware.EnsureRequestID())

	// Set up WebSocket routes
	app.Use("/ws", middleware.WebSocketUpgrade())
	app.Get("/ws/analysis", websocket.New(wsc.HandleConnection, wsConfig))

	// Set up REST routes
	api := app.Group("/api")

	boardRoutes := api.Group("/board")
	boardRoutes.Get("/new", ac.NewBoard)
	boardRoutes.Post("/apply", ac.ApplyMove)
	boardRoutes.Post("/promote", ac.Promote)

	moveRoutes := api.Group("/moves")
	moveRoutes.Post("/legal", ac.LegalMoves)
	moveRoutes.Post("/all", ac.AllMoves)

	api.Post("/engine/bestmove", ac.BestMove)
	api.Post("/notation", ac.Notation)
}
