package team

import (
	"github.com/DhavalSuthar-24/criclive/internal/user"
	"gorm.io/gorm"
)

// PlayerRole describes what a player does for this team.
type PlayerRole string

const (
	RoleBatsman      PlayerRole = "Batsman"
	RoleBowler       PlayerRole = "Bowler"
	RoleAllRounder   PlayerRole = "All-Rounder"
	RoleWicketKeeper PlayerRole = "Wicket-Keeper"
)

// Team represents a cricket team.
type Team struct {
	gorm.Model
	Name      string    `json:"name" gorm:"unique;not null"`
	CaptainID uint      `json:"captain_id" gorm:"index"`
	Captain   user.User `json:"captain" gorm:"foreignKey:CaptainID"`
	Players   []Player  `json:"players" gorm:"foreignKey:TeamID"`
}

// Player links a User to a Team with a role. A user can play for several
// teams, so match deliveries reference Player rows rather than users.
type Player struct {
	gorm.Model
	UserID uint       `json:"user_id" gorm:"index;not null"`
	User   user.User  `json:"user" gorm:"foreignKey:UserID"`
	TeamID uint       `json:"team_id" gorm:"index;not null"`
	Role   PlayerRole `json:"role" gorm:"not null"`
}
