package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	IssueID   uint      `gorm:"not null;index" json:"issue_id"`
	AuthorID  *uint     `gorm:"index" json:"user_id"`
	Text      string    `gorm:"column:comment_text;not null;type:text" json:"comment_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Issue  Issue `gorm:"foreignKey:IssueID" json:"-"`
	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}
