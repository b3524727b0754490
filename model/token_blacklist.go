package model

import (
	"time"
)

// JWTTokenBlacklist stores the JTI of tokens revoked before their expiry
type JWTTokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"column:jti;type:varchar(64);uniqueIndex;not null" json:"jti"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Reason    string    `gorm:"type:varchar(100)" json:"reason"` // logout, manual_revoke
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for JWTTokenBlacklist
func (JWTTokenBlacklist) TableName() string {
	return "jwt_token_blacklist"
}
