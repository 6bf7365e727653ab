package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/DhavalSuthar-24/criclive/config"
	"github.com/DhavalSuthar-24/criclive/internal/auth"
	"github.com/DhavalSuthar-24/criclive/internal/match"
	"github.com/DhavalSuthar-24/criclive/internal/notify"
	"github.com/DhavalSuthar-24/criclive/internal/team"
	"github.com/DhavalSuthar-24/criclive/internal/tournament"
)

func SetupRoutes(notifier *notify.Notifier) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default()) // allows all origins, GET/POST/PUT

	cfg := config.GetConfig()
	db := config.DB
	jwtSecret := cfg.JWT.AccessTokenSecret

	// Welcome page
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the CricLive API 🏏"})
	})

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	api := r.Group("/api")
	auth.RegisterAuthRoutes(api, db, cfg)
	team.TeamRoutes(api, db, cfg, jwtSecret)
	tournament.TournamentRoutes(api, db, cfg, jwtSecret)
	match.MatchRoutes(api, db, cfg, notifier, jwtSecret)

	return r
}
