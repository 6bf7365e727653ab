package main

import (
	"log"

	"github.com/DhavalSuthar-24/criclive/config"
	_ "github.com/DhavalSuthar-24/criclive/docs"
	"github.com/DhavalSuthar-24/criclive/internal/match"
	"github.com/DhavalSuthar-24/criclive/internal/notify"
	"github.com/DhavalSuthar-24/criclive/internal/team"
	"github.com/DhavalSuthar-24/criclive/internal/tournament"
	"github.com/DhavalSuthar-24/criclive/internal/user"
	"github.com/DhavalSuthar-24/criclive/routes"
)

// @title CricLive REST API
// @version 1.0
// @description Live-scoring backend for club cricket 🏏
// @host localhost:8088
// @BasePath /api
func main() {
	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&user.User{}, &user.RefreshToken{},
		&team.Team{}, &team.Player{},
		&tournament.Tournament{},
		&match.Match{}, &match.Inning{}, &match.Delivery{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	log.Println("AutoMigrate successful")

	notifier := notify.NewNotifier(cfg)

	r := routes.SetupRoutes(notifier)

	// Use port from loaded configuration
	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
