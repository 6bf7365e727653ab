package team

import (
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/criclive/config"
	"github.com/DhavalSuthar-24/criclive/internal/middleware"
	"github.com/DhavalSuthar-24/criclive/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	repo      TeamRepository
	appConfig *config.Config
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, appConfig *config.Config) *TeamController {
	return &TeamController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// --- DTOs for requests ---

// CreateTeamRequest defines the request payload for creating a team
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// AddPlayerRequest defines the request payload for rostering a player
type AddPlayerRequest struct {
	UserID uint       `json:"user_id" binding:"required"`
	TeamID uint       `json:"team_id" binding:"required"`
	Role   PlayerRole `json:"role" binding:"required,oneof=Batsman Bowler All-Rounder Wicket-Keeper"`
}

// @Summary      Create a team
// @Description  Creates a team; the authenticated user becomes its captain.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        team  body  CreateTeamRequest  true  "Team details"
// @Success      201  {object} Team
// @Failure      400  {object} map[string]string "Validation error"
// @Router       /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	team := Team{
		Name:      req.Name,
		CaptainID: userID,
	}
	if err := tc.repo.CreateTeam(&team); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create team: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Team created successfully",
		"team":    team,
	})
}

// @Summary      Get a team
// @Description  Retrieves a team with its captain and rostered players.
// @Tags         Teams
// @Produce      json
// @Param        team_id  path  int  true  "Team ID"
// @Success      200  {object} Team
// @Failure      404  {object} map[string]string "Team not found"
// @Router       /teams/{team_id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Team not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"team": team})
}

// @Summary      List teams
// @Tags         Teams
// @Produce      json
// @Param        page       query  int  false  "Page"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {array} Team
// @Router       /teams [get]
func (tc *TeamController) GetTeams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	teams, total, err := tc.repo.GetTeams(page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch teams: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, "", teams, total, page, pageSize)
}

// @Summary      Add a player to a team
// @Description  Rosters a user into a team with a role. Only the team captain may do this.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        team_id  path  int               true  "Team ID"
// @Param        player   body  AddPlayerRequest  true  "Player details"
// @Success      201  {object} Player
// @Failure      400  {object} map[string]string "Validation error or team ID mismatch"
// @Failure      403  {object} map[string]string "Only the team captain can add players"
// @Failure      404  {object} map[string]string "Team not found"
// @Router       /teams/{team_id}/players [post]
func (tc *TeamController) AddPlayerToTeam(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	teamID, err := strconv.ParseUint(c.Param("team_id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team ID")
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	team, err := tc.repo.GetTeamByID(uint(teamID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Team not found")
		return
	}

	if team.CaptainID != userID {
		responses.ErrorResponse(c, http.StatusForbidden, "Only the team captain can add players")
		return
	}
	if req.TeamID != uint(teamID) {
		responses.ErrorResponse(c, http.StatusBadRequest, "Team ID in URL and payload do not match")
		return
	}

	player := Player{
		UserID: req.UserID,
		TeamID: req.TeamID,
		Role:   req.Role,
	}
	if err := tc.repo.AddPlayer(&player); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to add player: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Player added to team",
		"player":  player,
	})
}
