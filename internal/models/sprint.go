package models

import "time"

type SprintStatus string

const (
	SprintStatusFuture    SprintStatus = "future"
	SprintStatusActive    SprintStatus = "active"
	SprintStatusCompleted SprintStatus = "completed"
)

func (s SprintStatus) Valid() bool {
	switch s {
	case SprintStatusFuture, SprintStatusActive, SprintStatusCompleted:
		return true
	}
	return false
}

type Sprint struct {
	ID        uint         `gorm:"primarykey" json:"id"`
	ProjectID uint         `gorm:"not null;index" json:"project_id"`
	Name      string       `gorm:"not null;size:255" json:"sprint_name"`
	Goal      string       `gorm:"type:text" json:"goal"`
	StartDate *time.Time   `json:"start_date"`
	EndDate   *time.Time   `json:"end_date"`
	Status    SprintStatus `gorm:"not null;default:'future';size:20" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relationships
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}
