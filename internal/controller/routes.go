package controller

import (
	"github.com/benbeisheim/chessviz-backend/internal/config"
	"github.com/benbeisheim/chessviz-backend/internal/middleware"
	"github.com/benbeisheim/chessviz-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

// NewApp wires the REST and WebSocket routes for boardService.
func NewApp(cfg config.Config, boardService *service.BoardService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "chessviz",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.OriginList(),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Viewer-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	boardController := NewBoardController(boardService)
	wsController := NewWebSocketController(boardService)

	// Set up WebSocket routes
	app.Use("/ws/*", middleware.EnsureViewerID())
	app.Get("/ws/board/:boardId", middleware.WebSocketUpgrade(), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         cfg.AllowedOrigins,
	}))

	// Set up REST routes
	api := app.Group("/api", middleware.EnsureViewerID())

	boardRoutes := api.Group("/board")
	boardRoutes.Post("/create", boardController.CreateBoard)
	boardRoutes.Get("/:boardId", boardController.GetBoardState)
	boardRoutes.Delete("/:boardId", boardController.DeleteBoard)
	boardRoutes.Get("/:boardId/moves", boardController.GetMoves)
	boardRoutes.Post("/:boardId/click", boardController.Click)
	boardRoutes.Post("/:boardId/select", boardController.Select)
	boardRoutes.Post("/:boardId/remove", boardController.RemovePiece)
	boardRoutes.Post("/:boardId/reset", boardController.Reset)
	boardRoutes.Post("/:boardId/fen", boardController.LoadFEN)

	return app
}
