package main

import (
	"log"
	"log/slog"
	"os"

	"faturaapi.com/internal/api"
	"faturaapi.com/internal/config"
	"faturaapi.com/internal/infra"
	"faturaapi.com/internal/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.LoadConfig()

	pg, err := infra.NewPostgresClient(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	users := service.NewUserService(pg.DB, cfg)

	app := api.NewServer(cfg)
	router := api.NewRouter(app, cfg, pg.DB, users)
	router.RegisterRoutes()

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := app.Listen(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
