package tournament

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/criclive/config"
	"github.com/DhavalSuthar-24/criclive/pkg/responses"
	"github.com/gin-gonic/gin"
)

// TournamentController handles tournament-related HTTP requests
type TournamentController struct {
	repo      TournamentRepository
	appConfig *config.Config
}

// NewTournamentController creates a new tournament controller
func NewTournamentController(repo TournamentRepository, appConfig *config.Config) *TournamentController {
	return &TournamentController{
		repo:      repo,
		appConfig: appConfig,
	}
}

// CreateTournamentRequest defines the request payload for creating a tournament
type CreateTournamentRequest struct {
	Name      string     `json:"name" binding:"required,min=3,max=200"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// @Summary      Create a tournament
// @Tags         Tournaments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tournament  body  CreateTournamentRequest  true  "Tournament details"
// @Success      201  {object} Tournament
// @Failure      400  {object} map[string]string "Validation error"
// @Router       /tournaments [post]
func (tc *TournamentController) CreateTournament(c *gin.Context) {
	var req CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	t := Tournament{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := tc.repo.CreateTournament(&t); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create tournament: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":    "Tournament created successfully",
		"tournament": t,
	})
}

// @Summary      List tournaments
// @Tags         Tournaments
// @Produce      json
// @Param        page       query  int  false  "Page"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {array} Tournament
// @Router       /tournaments [get]
func (tc *TournamentController) GetTournaments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	tournaments, total, err := tc.repo.GetTournaments(page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tournaments: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, "", tournaments, total, page, pageSize)
}

// @Summary      Get a tournament
// @Tags         Tournaments
// @Produce      json
// @Param        id  path  int  true  "Tournament ID"
// @Success      200  {object} Tournament
// @Failure      404  {object} map[string]string "Tournament not found"
// @Router       /tournaments/{id} [get]
func (tc *TournamentController) GetTournamentByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	t, err := tc.repo.GetTournamentByID(uint(id))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tournament: "+err.Error())
		return
	}
	if t == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Tournament not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"tournament": t})
}
