package models

import "time"

type Attachment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	IssueID    uint      `gorm:"not null;index" json:"issue_id"`
	UploaderID *uint     `gorm:"index" json:"user_id"`
	FileName   string    `gorm:"not null;size:255" json:"file_name"`
	FilePath   string    `gorm:"uniqueIndex;not null;size:512" json:"file_path"`
	FileType   string    `gorm:"size:100" json:"file_type"`
	FileSize   int64     `json:"file_size_bytes"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`

	// Relationships
	Issue    Issue `gorm:"foreignKey:IssueID" json:"-"`
	Uploader *User `gorm:"foreignKey:UploaderID" json:"-"`
}
