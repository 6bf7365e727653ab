package match

import (
	"errors"

	"gorm.io/gorm"
)

// MatchRepository defines methods to interact with match, inning and
// delivery data. The two composite writes (SaveTossResult, ApplyDelivery)
// are each executed as one transaction so partial state is never visible.
type MatchRepository interface {
	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	GetTournamentMatches(tournamentID uint, page, pageSize int) ([]Match, int64, error)
	GetInningByID(id uint) (*Inning, error)

	// SaveTossResult persists the toss fields on the match and creates both
	// innings as one atomic unit.
	SaveTossResult(m *Match, innings []*Inning) error

	// ApplyDelivery appends the delivery and saves the mutated inning and
	// match rows as one atomic unit.
	ApplyDelivery(d *Delivery, inning *Inning, m *Match) error

	// UpdateMatchStatus sets the status directly (admin override path).
	UpdateMatchStatus(matchID uint, status MatchStatus) error

	// WithTransaction runs txFunc against a transactional repository.
	WithTransaction(txFunc func(MatchRepository) error) error
}

// GormMatchRepository implements MatchRepository using GORM
type GormMatchRepository struct {
	db *gorm.DB
}

// NewGormMatchRepository creates a new GormMatchRepository
func NewGormMatchRepository(db *gorm.DB) *GormMatchRepository {
	return &GormMatchRepository{db: db}
}

// WithTransaction implements transaction support
func (r *GormMatchRepository) WithTransaction(txFunc func(MatchRepository) error) error {
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	txRepo := &GormMatchRepository{db: tx}
	err := txFunc(txRepo)
	if err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// CreateMatch creates a new match
func (r *GormMatchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

// GetMatchByID retrieves a match with teams, toss/winner references and both
// innings ordered by creation (the first-created inning is innings #1).
func (r *GormMatchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	result := r.db.Preload("Team1").
		Preload("Team2").
		Preload("TossWinner").
		Preload("Winner").
		Preload("Tournament").
		Preload("Innings", func(db *gorm.DB) *gorm.DB {
			return db.Order("innings.id")
		}).
		First(&m, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &m, nil
}

// GetTournamentMatches retrieves matches for a tournament with pagination
func (r *GormMatchRepository) GetTournamentMatches(tournamentID uint, page, pageSize int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	query := r.db.Model(&Match{}).Where("tournament_id = ?", tournamentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	result := query.Preload("Team1").
		Preload("Team2").
		Preload("Winner").
		Order("match_date").
		Offset(offset).Limit(pageSize).
		Find(&matches)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return matches, total, nil
}

// GetInningByID retrieves a single inning
func (r *GormMatchRepository) GetInningByID(id uint) (*Inning, error) {
	var inning Inning
	result := r.db.First(&inning, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &inning, nil
}

// SaveTossResult updates the match toss fields and creates both innings in
// one transaction. Innings are inserted in batting order so the first batting
// side always receives the lower ID.
func (r *GormMatchRepository) SaveTossResult(m *Match, innings []*Inning) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(m).Updates(map[string]interface{}{
			"toss_winner_id": m.TossWinnerID,
			"toss_decision":  m.TossDecision,
		}).Error; err != nil {
			return err
		}
		for _, inning := range innings {
			if err := tx.Create(inning).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyDelivery persists one delivery together with the mutated inning and
// match state in one transaction.
func (r *GormMatchRepository) ApplyDelivery(d *Delivery, inning *Inning, m *Match) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(d).Error; err != nil {
			return err
		}
		if err := tx.Model(inning).Updates(map[string]interface{}{
			"total_runs":   inning.TotalRuns,
			"wickets":      inning.Wickets,
			"overs_bowled": inning.OversBowled,
			"balls_bowled": inning.BallsBowled,
			"is_completed": inning.IsCompleted,
		}).Error; err != nil {
			return err
		}
		return tx.Model(m).Updates(map[string]interface{}{
			"status":    m.Status,
			"winner_id": m.WinnerID,
		}).Error
	})
}

// UpdateMatchStatus sets the match status without touching anything else.
func (r *GormMatchRepository) UpdateMatchStatus(matchID uint, status MatchStatus) error {
	return r.db.Model(&Match{}).Where("id = ?", matchID).Update("status", status).Error
}
