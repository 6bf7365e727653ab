package tournament

import (
	"errors"

	"gorm.io/gorm"
)

// TournamentRepository defines methods to interact with tournament data
type TournamentRepository interface {
	CreateTournament(t *Tournament) error
	GetTournamentByID(id uint) (*Tournament, error)
	GetTournaments(page, pageSize int) ([]Tournament, int64, error)
}

// GormTournamentRepository implements TournamentRepository using GORM
type GormTournamentRepository struct {
	db *gorm.DB
}

// NewGormTournamentRepository creates a new GormTournamentRepository
func NewGormTournamentRepository(db *gorm.DB) *GormTournamentRepository {
	return &GormTournamentRepository{db: db}
}

func (r *GormTournamentRepository) CreateTournament(t *Tournament) error {
	return r.db.Create(t).Error
}

func (r *GormTournamentRepository) GetTournamentByID(id uint) (*Tournament, error) {
	var t Tournament
	result := r.db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &t, nil
}

func (r *GormTournamentRepository) GetTournaments(page, pageSize int) ([]Tournament, int64, error) {
	var tournaments []Tournament
	var total int64

	query := r.db.Model(&Tournament{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Order("start_date").Offset(offset).Limit(pageSize).Find(&tournaments)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return tournaments, total, nil
}
