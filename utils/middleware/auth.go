package middleware

import (
	"errors"
	"strings"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/auth"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	jwtManager       *auth.JWTManager
	blacklistService *auth.BlacklistService
	db               *gorm.DB
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *auth.JWTManager, db *gorm.DB) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:       jwtManager,
		blacklistService: auth.NewBlacklistService(db),
		db:               db,
	}
}

// Required is middleware that requires a valid, unrevoked token
func (m *AuthMiddleware) Required() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if user == nil {
			return err
		}
		return c.Next()
	}
}

// RequireAdmin is middleware that requires a valid token held by an admin
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := m.authenticate(c)
		if user == nil {
			return err
		}

		if !user.IsAdmin() {
			return response.Forbidden(c, "Admin access required")
		}

		return c.Next()
	}
}

// authenticate validates the bearer token and stores the user in Locals.
// On failure the user is nil and the 401 response is already written.
func (m *AuthMiddleware) authenticate(c *fiber.Ctx) (*model.User, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, response.Unauthorized(c, "Missing authorization token")
	}

	// Extract token from "Bearer <token>"
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, response.Unauthorized(c, "Invalid authorization format")
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, response.Unauthorized(c, "Token has expired")
		}
		return nil, response.Unauthorized(c, "Invalid token")
	}

	ctx := c.UserContext()

	isRevoked, err := m.blacklistService.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return nil, response.Unauthorized(c, "Token has been revoked")
	}

	var user model.User
	if err := m.db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.Unauthorized(c, "User not found")
		}
		return nil, response.InternalServerError(c, "Failed to load user")
	}

	if user.TokenVersion != claims.TokenVersion {
		return nil, response.Unauthorized(c, "Token has been invalidated")
	}

	c.Locals("user_id", user.ID)
	c.Locals("user", &user)
	c.Locals("claims", claims)

	return &user, nil
}

// GetUserID extracts user ID from context
func GetUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("user_id").(uint)
	return id, ok
}

// GetUser extracts full user object from context
func GetUser(c *fiber.Ctx) (*model.User, bool) {
	u, ok := c.Locals("user").(*model.User)
	return u, ok && u != nil
}

// GetClaims extracts full claims from context
func GetClaims(c *fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals("claims").(*auth.Claims)
	return claims, ok && claims != nil
}
