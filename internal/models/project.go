package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusArchived  ProjectStatus = "archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}

type Project struct {
	ID          uint          `gorm:"primarykey" json:"id"`
	Key         string        `gorm:"uniqueIndex;not null;size:10" json:"project_key"`
	Name        string        `gorm:"not null;size:255" json:"project_name"`
	Description string        `gorm:"type:text" json:"description"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Status      ProjectStatus `gorm:"not null;default:'planning';size:20" json:"status"`
	OwnerID     *uint         `gorm:"index" json:"owner_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relationships
	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}
