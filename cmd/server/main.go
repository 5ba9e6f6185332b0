package main

import (
	"os"

	"github.com/benbeisheim/chessviz-backend/internal/config"
	"github.com/benbeisheim/chessviz-backend/internal/controller"
	"github.com/benbeisheim/chessviz-backend/internal/service"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	cfg, err := config.FromEnvironment()
	if err != nil {
		log.Errorf("invalid configuration: %v", err)
		os.Exit(2)
	}
	log.SetLevel(cfg.Level())

	// Initialize services
	sessionManager := service.NewSessionManager()
	boardService := service.NewBoardService(sessionManager)

	app := controller.NewApp(cfg, boardService)

	log.Infof("listening on %s (origins: %s)", cfg.Addr, cfg.OriginList())
	log.Fatal(app.Listen(cfg.Addr))
}
