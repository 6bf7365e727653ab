package tournament

import (
	"time"

	"gorm.io/gorm"
)

// Tournament represents a league or tournament that matches belong to.
type Tournament struct {
	gorm.Model
	Name      string     `json:"name" gorm:"index;not null"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}
