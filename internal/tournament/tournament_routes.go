package tournament

import (
	"github.com/DhavalSuthar-24/criclive/config"
	mw "github.com/DhavalSuthar-24/criclive/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TournamentRoutes sets up all tournament-related routes
func TournamentRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	repo := NewGormTournamentRepository(db)
	controller := NewTournamentController(repo, appConfig)

	router.GET("/tournaments", controller.GetTournaments)
	router.GET("/tournaments/:id", controller.GetTournamentByID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/tournaments", controller.CreateTournament)
	}
}
