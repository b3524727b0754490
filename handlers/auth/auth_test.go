package auth_test

import (
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	s := testutil.NewServer(t)

	tests := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"valid", testutil.AdminEmail, testutil.AdminPassword, http.StatusOK},
		{"email is case insensitive", "  ADMIN@cse.example.edu ", testutil.AdminPassword, http.StatusOK},
		{"wrong password", testutil.AdminEmail, "nope", http.StatusUnauthorized},
		{"unknown user", "ghost@cse.example.edu", testutil.AdminPassword, http.StatusUnauthorized},
		{"malformed email", "not-an-email", testutil.AdminPassword, http.StatusBadRequest},
		{"missing password", testutil.AdminEmail, "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.JSON(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
				"email":    tt.email,
				"password": tt.password,
			}, "")
			require.Equal(t, tt.status, res.Status, "%s", res.Raw)

			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "Invalid email or password", res.Body["error"].(map[string]interface{})["message"])
			}
			if tt.status == http.StatusOK {
				data := res.Data(t)
				assert.NotEmpty(t, data["token"])
				assert.Equal(t, float64(3600), data["expires_in"])
				assert.Equal(t, model.RoleAdmin, data["user"].(map[string]interface{})["role"])
				assert.NotContains(t, data["user"], "password_hash")
			}
		})
	}

	var admin model.User
	require.NoError(t, s.DB.First(&admin, s.Admin.ID).Error)
	assert.NotNil(t, admin.LastLoginAt)
}

func TestMeAndLogout(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    testutil.AdminEmail,
		"password": testutil.AdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	token := res.Data(t)["token"].(string)

	res = s.JSON(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, testutil.AdminEmail, res.Data(t)["email"])

	res = s.JSON(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.Equal(t, "Logged out successfully", res.Body["message"])

	res = s.JSON(t, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Token has been revoked", res.Body["error"].(map[string]interface{})["message"])

	var revoked int64
	require.NoError(t, s.DB.Model(&model.JWTTokenBlacklist{}).Count(&revoked).Error)
	assert.Equal(t, int64(1), revoked)
}

func TestAuthorizationFailures(t *testing.T) {
	s := testutil.NewServer(t)

	tests := []struct {
		name    string
		path    string
		token   string
		status  int
		message string
	}{
		{"no token", "/api/auth/me", "", http.StatusUnauthorized, "Missing authorization token"},
		{"garbage token", "/api/auth/me", "abc.def.ghi", http.StatusUnauthorized, "Invalid token"},
		{"editor on me", "/api/auth/me", s.EditorToken, http.StatusOK, ""},
		{"editor on admin", "/api/admin/news", s.EditorToken, http.StatusForbidden, "Admin access required"},
		{"anonymous admin", "/api/admin/news", "", http.StatusUnauthorized, "Missing authorization token"},
		{"admin", "/api/admin/news", s.AdminToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.JSON(t, http.MethodGet, tt.path, nil, tt.token)
			require.Equal(t, tt.status, res.Status, "%s", res.Raw)
			if tt.message != "" {
				assert.Equal(t, tt.message, res.Body["error"].(map[string]interface{})["message"])
			}
		})
	}
}

func TestTokenVersionInvalidatesSessions(t *testing.T) {
	s := testutil.NewServer(t)

	require.NoError(t, s.DB.Model(&model.User{}).Where("id = ?", s.Admin.ID).Update("token_version", 1).Error)

	res := s.JSON(t, http.MethodGet, "/api/auth/me", nil, s.AdminToken)
	assert.Equal(t, http.StatusUnauthorized, res.Status)
	assert.Equal(t, "Token has been invalidated", res.Body["error"].(map[string]interface{})["message"])
}
