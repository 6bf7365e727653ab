package team

import (
	"errors"

	"gorm.io/gorm"
)

// TeamRepository defines methods to interact with team and roster data
type TeamRepository interface {
	CreateTeam(team *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeams(page, pageSize int) ([]Team, int64, error)
	AddPlayer(player *Player) error
	GetPlayerByID(id uint) (*Player, error)
	IsUserTeamCaptain(teamID, userID uint) (bool, error)
}

// GormTeamRepository implements TeamRepository using GORM
type GormTeamRepository struct {
	db *gorm.DB
}

// NewGormTeamRepository creates a new GormTeamRepository
func NewGormTeamRepository(db *gorm.DB) *GormTeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) CreateTeam(team *Team) error {
	return r.db.Create(team).Error
}

// GetTeamByID retrieves a team with its captain and rostered players.
func (r *GormTeamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	result := r.db.Preload("Captain").
		Preload("Players").
		Preload("Players.User").
		First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *GormTeamRepository) GetTeams(page, pageSize int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Preload("Captain").
		Offset(offset).Limit(pageSize).
		Find(&teams)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return teams, total, nil
}

func (r *GormTeamRepository) AddPlayer(player *Player) error {
	return r.db.Create(player).Error
}

func (r *GormTeamRepository) GetPlayerByID(id uint) (*Player, error) {
	var p Player
	result := r.db.Preload("User").First(&p, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &p, nil
}

func (r *GormTeamRepository) IsUserTeamCaptain(teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&Team{}).
		Where("id = ? AND captain_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}
