package handlers_test

import (
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Get(t, "/health")
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.Equal(t, "ok", res.Body["status"])
	assert.Equal(t, "up", res.Body["database"])
	assert.NotEmpty(t, res.Body["timestamp"])

	sqlDB, err := s.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	res = s.Get(t, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, res.Status)
	assert.Equal(t, "down", res.Body["database"])
}

func TestUnknownRoute(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Get(t, "/api/public/nothing-here")
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, false, res.Body["success"])
}
