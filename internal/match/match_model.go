package match

import (
	"time"

	"github.com/DhavalSuthar-24/criclive/internal/team"
	"github.com/DhavalSuthar-24/criclive/internal/tournament"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusScheduled MatchStatus = "Scheduled"
	StatusLive      MatchStatus = "Live"
	StatusCompleted MatchStatus = "Completed"
	StatusAbandoned MatchStatus = "Abandoned" // Manual transition only, never set by scoring
)

type TossDecision string

const (
	DecisionBat   TossDecision = "Bat"
	DecisionField TossDecision = "Field"
)

// ExtraType for runs not scored off the bat
type ExtraType string

const (
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

// DismissalType for cricket wickets
type DismissalType string

const (
	DismissalBowled    DismissalType = "bowled"
	DismissalCaught    DismissalType = "caught"
	DismissalLBW       DismissalType = "lbw"
	DismissalRunOut    DismissalType = "run_out"
	DismissalStumped   DismissalType = "stumped"
	DismissalHitWicket DismissalType = "hit_wicket"
)

// Default format limits, applied to new matches unless overridden.
const (
	DefaultOversLimit   = 20
	DefaultWicketsLimit = 10
)

// Match represents a single cricket match between two teams.
type Match struct {
	gorm.Model
	MatchDate time.Time   `json:"match_date" gorm:"not null"`
	Venue     string      `json:"venue,omitempty"`
	Status    MatchStatus `json:"status" gorm:"index;not null;default:'Scheduled'"`

	TournamentID *uint                  `json:"tournament_id,omitempty" gorm:"index"`
	Tournament   *tournament.Tournament `json:"tournament,omitempty" gorm:"foreignKey:TournamentID"`

	Team1ID uint      `json:"team1_id" gorm:"index;not null"`
	Team1   team.Team `json:"team1" gorm:"foreignKey:Team1ID"`
	Team2ID uint      `json:"team2_id" gorm:"index;not null"`
	Team2   team.Team `json:"team2" gorm:"foreignKey:Team2ID"`

	TossWinnerID *uint         `json:"toss_winner_id,omitempty" gorm:"index"`
	TossWinner   *team.Team    `json:"toss_winner,omitempty" gorm:"foreignKey:TossWinnerID"`
	TossDecision *TossDecision `json:"toss_decision,omitempty"`

	WinnerID *uint      `json:"winner_id,omitempty" gorm:"index"`
	Winner   *team.Team `json:"winner,omitempty" gorm:"foreignKey:WinnerID"`

	// Format limits carried per match so other formats need no code change.
	OversLimit   int `json:"overs_limit" gorm:"not null;default:20"`
	WicketsLimit int `json:"wickets_limit" gorm:"not null;default:10"`

	Innings []Inning `json:"innings" gorm:"foreignKey:MatchID"`
}

// Inning represents one of the two innings in a match. Both rows are created
// together by toss resolution; the lower ID is always innings #1.
type Inning struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"index;not null"`

	BattingTeamID uint      `json:"batting_team_id" gorm:"index;not null"`
	BattingTeam   team.Team `json:"batting_team" gorm:"foreignKey:BattingTeamID"`
	BowlingTeamID uint      `json:"bowling_team_id" gorm:"index;not null"`
	BowlingTeam   team.Team `json:"bowling_team" gorm:"foreignKey:BowlingTeamID"`

	TotalRuns   int  `json:"total_runs" gorm:"not null;default:0"`
	Wickets     int  `json:"wickets" gorm:"not null;default:0"`
	OversBowled int  `json:"overs_bowled" gorm:"not null;default:0"`
	BallsBowled int  `json:"balls_bowled" gorm:"not null;default:0"` // 0..5, resets each over
	IsCompleted bool `json:"is_completed" gorm:"not null;default:false"`

	Deliveries []Delivery `json:"deliveries,omitempty" gorm:"foreignKey:InningID"`
}

// Delivery represents a single ball bowled in an inning. Deliveries are an
// append-only log; rows are never edited or deleted.
// Batsman and bowler link to Player rather than User, since a user may be
// rostered on several teams.
type Delivery struct {
	gorm.Model
	InningID uint `json:"inning_id" gorm:"index;not null"`

	BatsmanID uint        `json:"batsman_id" gorm:"index;not null"`
	Batsman   team.Player `json:"batsman,omitempty" gorm:"foreignKey:BatsmanID"`
	BowlerID  uint        `json:"bowler_id" gorm:"index;not null"`
	Bowler    team.Player `json:"bowler,omitempty" gorm:"foreignKey:BowlerID"`

	RunsScored int            `json:"runs_scored" gorm:"not null;default:0"`
	IsExtra    bool           `json:"is_extra" gorm:"not null;default:false"`
	ExtraType  *ExtraType     `json:"extra_type,omitempty"`
	IsWicket   bool           `json:"is_wicket" gorm:"not null;default:false"`
	WicketType *DismissalType `json:"wicket_type,omitempty"`
}
