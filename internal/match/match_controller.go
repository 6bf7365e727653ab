package match

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/criclive/config"
	"github.com/DhavalSuthar-24/criclive/internal/notify"
	"github.com/DhavalSuthar-24/criclive/internal/tournament"
	"github.com/DhavalSuthar-24/criclive/pkg/responses"
	"github.com/gin-gonic/gin"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	repo           MatchRepository
	tournamentRepo tournament.TournamentRepository
	engine         *ScoringEngine
	notifier       *notify.Notifier
	appConfig      *config.Config
}

// NewMatchController creates a new match controller
func NewMatchController(repo MatchRepository, tournamentRepo tournament.TournamentRepository, engine *ScoringEngine, notifier *notify.Notifier, appConfig *config.Config) *MatchController {
	return &MatchController{
		repo:           repo,
		tournamentRepo: tournamentRepo,
		engine:         engine,
		notifier:       notifier,
		appConfig:      appConfig,
	}
}

// --- DTOs for requests ---

// CreateMatchRequest defines the request payload for scheduling a match
type CreateMatchRequest struct {
	MatchDate time.Time `json:"match_date" binding:"required"`
	Venue     string    `json:"venue,omitempty"`
	Team1ID   uint      `json:"team1_id" binding:"required"`
	Team2ID   uint      `json:"team2_id" binding:"required"`
}

// RecordTossRequest defines the request payload for recording a toss
type RecordTossRequest struct {
	TossWinnerID uint         `json:"toss_winner_id" binding:"required"`
	Decision     TossDecision `json:"decision" binding:"required,oneof=Bat Field"`
}

// RecordDeliveryRequest defines the request payload for live scoring
type RecordDeliveryRequest struct {
	InningID   uint           `json:"inning_id" binding:"required"`
	BatsmanID  uint           `json:"batsman_id" binding:"required"`
	BowlerID   uint           `json:"bowler_id" binding:"required"`
	RunsScored int            `json:"runs_scored" binding:"gte=0"`
	IsWicket   bool           `json:"is_wicket"`
	IsExtra    bool           `json:"is_extra"`
	ExtraType  *ExtraType     `json:"extra_type,omitempty" binding:"omitempty,oneof=wide no_ball bye leg_bye"`
	WicketType *DismissalType `json:"wicket_type,omitempty" binding:"omitempty,oneof=bowled caught lbw run_out stumped hit_wicket"`
}

// OverrideStatusRequest defines the admin payload for manual status changes
type OverrideStatusRequest struct {
	Status MatchStatus `json:"status" binding:"required,oneof=Scheduled Live Completed Abandoned"`
}

// scoringErrorStatus maps scoring error kinds to HTTP status codes.
func scoringErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrMatchNotFound), errors.Is(err, ErrInningNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidTossWinner), errors.Is(err, ErrInningMatchMismatch):
		return http.StatusBadRequest
	case errors.Is(err, ErrAlreadyTossed), errors.Is(err, ErrMatchAlreadyCompleted), errors.Is(err, ErrInningAlreadyCompleted):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      Schedule a match in a tournament
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path  int                 true  "Tournament ID"
// @Param        match  body  CreateMatchRequest  true  "Match details"
// @Success      201  {object} Match
// @Failure      400  {object} map[string]string "A team cannot play against itself"
// @Failure      404  {object} map[string]string "Tournament not found"
// @Router       /tournaments/{id}/matches [post]
func (mc *MatchController) CreateMatchInTournament(c *gin.Context) {
	tournamentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	if req.Team1ID == req.Team2ID {
		responses.ErrorResponse(c, http.StatusBadRequest, "A team cannot play against itself")
		return
	}

	t, err := mc.tournamentRepo.GetTournamentByID(uint(tournamentID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch tournament: "+err.Error())
		return
	}
	if t == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Tournament not found")
		return
	}

	tid := uint(tournamentID)
	m := Match{
		MatchDate:    req.MatchDate,
		Venue:        req.Venue,
		Status:       StatusScheduled,
		TournamentID: &tid,
		Team1ID:      req.Team1ID,
		Team2ID:      req.Team2ID,
		OversLimit:   DefaultOversLimit,
		WicketsLimit: DefaultWicketsLimit,
	}
	if err := mc.repo.CreateMatch(&m); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create match: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message": "Match scheduled successfully",
		"match":   m,
	})
}

// @Summary      Get a match
// @Description  Retrieves the full match aggregate: teams, toss, winner and both innings.
// @Tags         Matches
// @Produce      json
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object} Match
// @Failure      404  {object} map[string]string "Match not found"
// @Router       /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{"match": m})
}

// @Summary      List matches in a tournament
// @Tags         Matches
// @Produce      json
// @Param        id         path   int  true   "Tournament ID"
// @Param        page       query  int  false  "Page"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {array} Match
// @Router       /tournaments/{id}/matches [get]
func (mc *MatchController) GetTournamentMatches(c *gin.Context) {
	tournamentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid tournament ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	matches, total, err := mc.repo.GetTournamentMatches(uint(tournamentID), page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch matches: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, "", matches, total, page, pageSize)
}

// @Summary      Record the toss
// @Description  Records the toss outcome and creates both innings in batting order.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "Match ID"
// @Param        toss  body  RecordTossRequest  true  "Toss outcome"
// @Success      200  {object} Match
// @Failure      400  {object} map[string]string "Toss winner must be one of the two teams"
// @Failure      404  {object} map[string]string "Match not found"
// @Failure      409  {object} map[string]string "Toss already recorded"
// @Router       /matches/{id}/toss [post]
func (mc *MatchController) RecordToss(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req RecordTossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	// Reject obviously wrong winners before touching the engine; the engine
	// defends the same invariant itself.
	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}
	if req.TossWinnerID != m.Team1ID && req.TossWinnerID != m.Team2ID {
		responses.ErrorResponse(c, http.StatusBadRequest, "Toss winner must be one of the two teams in the match")
		return
	}

	updated, err := mc.engine.ResolveToss(uint(matchID), req.TossWinnerID, req.Decision)
	if err != nil {
		responses.ErrorResponse(c, scoringErrorStatus(err), err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Toss recorded successfully",
		"match":   updated,
	})
}

// @Summary      Record a delivery
// @Description  Records a single ball and updates the live match state. Returns the refreshed match aggregate.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int                    true  "Match ID"
// @Param        delivery  body  RecordDeliveryRequest  true  "Delivery details"
// @Success      201  {object} Match
// @Failure      400  {object} map[string]string "Inning does not belong to this match"
// @Failure      404  {object} map[string]string "Match or inning not found"
// @Failure      409  {object} map[string]string "Match or inning already completed"
// @Router       /matches/{id}/score [post]
func (mc *MatchController) RecordDelivery(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req RecordDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	delivery, err := mc.engine.RecordDelivery(uint(matchID), DeliveryInput{
		InningID:   req.InningID,
		BatsmanID:  req.BatsmanID,
		BowlerID:   req.BowlerID,
		RunsScored: req.RunsScored,
		IsWicket:   req.IsWicket,
		IsExtra:    req.IsExtra,
		ExtraType:  req.ExtraType,
		WicketType: req.WicketType,
	})
	if err != nil {
		responses.ErrorResponse(c, scoringErrorStatus(err), err.Error())
		return
	}

	// Callers get the post-delivery aggregate view from a fresh read.
	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
		return
	}

	if m != nil && m.Status == StatusCompleted {
		mc.announceResult(m)
	}

	responses.SuccessResponse(c, http.StatusCreated, gin.H{
		"message":  "Delivery recorded",
		"delivery": delivery,
		"match":    m,
	})
}

// announceResult pushes the final score line to the configured channel.
func (mc *MatchController) announceResult(m *Match) {
	if mc.notifier == nil || len(m.Innings) < 2 {
		return
	}
	summary := fmt.Sprintf("%s %d/%d vs %s %d/%d",
		m.Team1.Name, inningsScoreFor(m, m.Team1ID), inningsWicketsFor(m, m.Team1ID),
		m.Team2.Name, inningsScoreFor(m, m.Team2ID), inningsWicketsFor(m, m.Team2ID))
	if m.Winner != nil {
		summary = fmt.Sprintf("%s won! Final score: %s", m.Winner.Name, summary)
	} else {
		summary = "Match tied! Final score: " + summary
	}
	go mc.notifier.Announce(summary)
}

func inningsScoreFor(m *Match, teamID uint) int {
	for _, inning := range m.Innings {
		if inning.BattingTeamID == teamID {
			return inning.TotalRuns
		}
	}
	return 0
}

func inningsWicketsFor(m *Match, teamID uint) int {
	for _, inning := range m.Innings {
		if inning.BattingTeamID == teamID {
			return inning.Wickets
		}
	}
	return 0
}

// @Summary      Override match status
// @Description  Manual status transition, e.g. abandoning a rained-off match. Never used by scoring.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int                    true  "Match ID"
// @Param        status  body  OverrideStatusRequest  true  "New status"
// @Success      200  {object} map[string]string
// @Failure      404  {object} map[string]string "Match not found"
// @Router       /admin/matches/{id}/override-status [post]
func (mc *MatchController) AdminOverrideMatchStatus(c *gin.Context) {
	matchID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return
	}

	var req OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.repo.GetMatchByID(uint(matchID))
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch match: "+err.Error())
		return
	}
	if m == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Match not found")
		return
	}

	if err := mc.repo.UpdateMatchStatus(uint(matchID), req.Status); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to update status: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusOK, gin.H{
		"message": "Match status updated",
		"status":  req.Status,
	})
}
