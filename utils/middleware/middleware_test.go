package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditResource(t *testing.T) {
	tests := []struct {
		path     string
		resource string
		id       uint
	}{
		{"/api/admin/news", "news", 0},
		{"/api/admin/news/12", "news", 12},
		{"/api/admin/programs/sections/4/semesters", "programs/sections/semesters", 4},
		{"/api/admin/programs/sections/content", "programs/sections/content", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resource, id := auditResource(tt.path)
			assert.Equal(t, tt.resource, resource)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestAuditAction(t *testing.T) {
	assert.Equal(t, "create", auditAction(fiber.MethodPost))
	assert.Equal(t, "update", auditAction(fiber.MethodPut))
	assert.Equal(t, "delete", auditAction(fiber.MethodDelete))
	assert.Empty(t, auditAction(fiber.MethodGet))
}

func TestLockoutFor(t *testing.T) {
	tests := []struct {
		attempts int64
		want     time.Duration
	}{
		{1, 0},
		{4, 0},
		{5, 2 * time.Minute},
		{9, 2 * time.Minute},
		{10, time.Hour},
		{24, time.Hour},
		{25, 24 * time.Hour},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, LockoutFor(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestRequestTimeoutSetsDeadline(t *testing.T) {
	app := fiber.New()
	app.Use(RequestTimeout(30 * time.Second))
	app.Get("/", func(c *fiber.Ctx) error {
		deadline, ok := c.UserContext().Deadline()
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		if time.Until(deadline) > 30*time.Second {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestUploadRateLimitOnlyCountsMultipart(t *testing.T) {
	app := fiber.New()
	app.Use(UploadRateLimit(1, time.Minute))
	app.Post("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		resp, err := app.Test(req)
		require.NoError(t, err)
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{fiber.StatusOK, fiber.StatusTooManyRequests}, codes)
}

func TestDisabledCachesPassThrough(t *testing.T) {
	var pc *PublicCache
	bf := NewBruteForceProtection(nil)

	app := fiber.New()
	app.Use(pc.Middleware(), bf.CheckAndRecordAttempt())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-Cache"))
}
