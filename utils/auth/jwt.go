package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// Claims carried by an admin session token
type Claims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion int    `json:"token_version"` // For invalidating all tokens
	jwt.RegisteredClaims
}

// IssuedToken is a signed token plus the metadata needed to revoke it
type IssuedToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// JWTManager handles JWT token operations
type JWTManager struct {
	config JWTConfig
	now    func() time.Time
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(config JWTConfig) *JWTManager {
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &JWTManager{
		config: config,
		now:    time.Now,
	}
}

// Expiry is the lifetime of issued tokens
func (j *JWTManager) Expiry() time.Duration {
	return j.config.Expiry
}

// Issue signs a new HS256 token for the user
func (j *JWTManager) Issue(userID uint, email string, role string, tokenVersion int) (IssuedToken, error) {
	now := j.now()
	expiresAt := now.Add(j.config.Expiry)
	jti := uuid.New().String()

	claims := Claims{
		UserID:       userID,
		Email:        email,
		Role:         role,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    j.config.Issuer,
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(j.config.Secret))
	if err != nil {
		return IssuedToken{}, err
	}

	return IssuedToken{Token: signed, JTI: jti, ExpiresAt: expiresAt}, nil
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if j.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.config.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.config.Secret), nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
