package team

import (
	"github.com/DhavalSuthar-24/criclive/config"
	mw "github.com/DhavalSuthar-24/criclive/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamRoutes sets up all team-related routes
func TeamRoutes(router *gin.RouterGroup, db *gorm.DB, appConfig *config.Config, jwtSecret string) {
	teamRepo := NewGormTeamRepository(db)
	teamController := NewTeamController(teamRepo, appConfig)

	// Public team routes
	router.GET("/teams", teamController.GetTeams)
	router.GET("/teams/:team_id", teamController.GetTeamByID)

	// Authenticated user routes
	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/teams", teamController.CreateTeam)
		authRoutes.POST("/teams/:team_id/players", teamController.AddPlayerToTeam) // Captain only, checked in handler
	}
}
