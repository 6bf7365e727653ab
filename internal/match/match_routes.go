package match

import (
	"github.com/DhavalSuthar-24/criclive/config"
	mw "github.com/DhavalSuthar-24/criclive/internal/middleware"
	"github.com/DhavalSuthar-24/criclive/internal/notify"
	"github.com/DhavalSuthar-24/criclive/internal/tournament"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MatchRoutes sets up all match and live-scoring routes.
func MatchRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, notifier *notify.Notifier, jwtSecret string) {
	matchRepo := NewGormMatchRepository(db)
	tournamentRepo := tournament.NewGormTournamentRepository(db)
	engine := NewScoringEngine(matchRepo)
	matchController := NewMatchController(matchRepo, tournamentRepo, engine, notifier, appConfig)

	// Public read routes
	router.GET("/matches/:id", matchController.GetMatchByID)
	router.GET("/tournaments/:id/matches", matchController.GetTournamentMatches)

	// Authenticated routes
	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/tournaments/:id/matches", matchController.CreateMatchInTournament)
		authRoutes.POST("/matches/:id/toss", matchController.RecordToss)
		authRoutes.POST("/matches/:id/score", matchController.RecordDelivery)

		authRoutes.POST("/admin/matches/:id/override-status", matchController.AdminOverrideMatchStatus)
	}
}
