package model

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// User is a CMS account able to sign in to the admin panel
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"` // Never expose password in JSON
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Role         string     `gorm:"type:varchar(20);not null;default:'admin'" json:"role"`
	TokenVersion int        `gorm:"default:0" json:"-"` // Increment to invalidate all user tokens
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	AuditLogs      []AdminAuditLog     `gorm:"foreignKey:AdminID;constraint:OnDelete:CASCADE" json:"-"`
	TokenBlacklist []JWTTokenBlacklist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the account may use the admin API
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
