package auth

import (
	"context"
	"time"

	"github.com/cse-dept/cms-api/model"
	"gorm.io/gorm"
)

// BlacklistService records revoked session tokens by their jti
type BlacklistService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewBlacklistService(db *gorm.DB) *BlacklistService {
	return &BlacklistService{db: db, now: time.Now}
}

// Revoke blacklists the token described by claims until it would have
// expired anyway. Tokens without an exp claim are kept for fallback.
func (s *BlacklistService) Revoke(ctx context.Context, claims *Claims, reason string, fallback time.Duration) error {
	expiresAt := s.now().Add(fallback)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return s.db.WithContext(ctx).Create(&model.JWTTokenBlacklist{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		Reason:    reason,
		ExpiresAt: expiresAt,
	}).Error
}

// IsTokenRevoked reports whether jti is blacklisted and not yet expired
func (s *BlacklistService) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.JWTTokenBlacklist{}).
		Where("jti = ? AND expires_at > ?", jti, s.now()).
		Count(&count).Error
	return count > 0, err
}

// CleanupExpiredTokens drops entries whose tokens can no longer be used
func (s *BlacklistService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", s.now()).
		Delete(&model.JWTTokenBlacklist{})
	return result.RowsAffected, result.Error
}
