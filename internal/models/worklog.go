package models

import "time"

// Worklog records time spent against an issue. Hours are kept to two
// decimal places, matching the DECIMAL(5,2) column they map to.
type Worklog struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	IssueID     uint      `gorm:"not null;index" json:"issue_id"`
	LoggerID    *uint     `gorm:"index" json:"user_id"`
	Hours       float64   `gorm:"column:hours_logged;not null;type:decimal(5,2)" json:"hours_logged"`
	WorkDate    time.Time `gorm:"not null" json:"work_date"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Issue  Issue `gorm:"foreignKey:IssueID" json:"-"`
	Logger *User `gorm:"foreignKey:LoggerID" json:"-"`
}
