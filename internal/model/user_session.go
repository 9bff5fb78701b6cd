package model

import "time"

// swagger:model UserSession
type UserSession struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"size:100;index" json:"username"`
	UserRole     string    `gorm:"size:20" json:"userRole"`
	SessionToken string    `gorm:"size:36;uniqueIndex" json:"sessionToken"`
	CreatedAt    time.Time `json:"createdAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
}

func (UserSession) TableName() string {
	return "user_sessions"
}
