package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/auth"
	"github.com/cse-dept/cms-api/utils/middleware"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles admin sign-in
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	blacklist            *auth.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler. bruteForce may be nil.
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklist:            auth.NewBlacklistService(db),
		bruteForceProtection: bruteForce,
		validator:            validation.NewValidator(),
	}
}

// LoginRequest represents an admin login request
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // in seconds
	User      UserResponse `json:"user"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = strings.ToLower(validation.SanitizeString(req.Email))
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ip := c.IP()
	db := h.db.WithContext(c.UserContext())

	var user model.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		// Record failed attempt even if user not found
		h.bruteForceProtection.RecordFailedAttempt(c, ip)
		return response.Unauthorized(c, "Invalid email or password")
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		h.bruteForceProtection.RecordFailedAttempt(c, ip)
		return response.Unauthorized(c, "Invalid email or password")
	}

	h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)

	issued, err := h.jwtManager.Issue(user.ID, user.Email, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := db.Model(&user).Update("last_login_at", now).Error; err != nil {
		return err
	}

	return response.Success(c, LoginResponse{
		Token:     issued.Token,
		ExpiresIn: int(h.jwtManager.Expiry().Seconds()),
		User:      toUserResponse(&user),
	})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, toUserResponse(user))
}

// Logout handles POST /api/auth/logout by revoking the presented token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.blacklist.Revoke(c.UserContext(), claims, "logout", h.jwtManager.Expiry()); err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Logged out successfully", nil)
}
