package models

import "time"

type Role string

const (
	RoleUser           Role = "user"
	RoleAdmin          Role = "admin"
	RoleProjectManager Role = "project_manager"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleProjectManager:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null;size:100" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"not null;default:'user';size:20" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
