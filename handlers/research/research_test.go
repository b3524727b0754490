package research_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminResearch = "/api/admin/research"

func TestResearchDefaultsAndStatus(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, adminResearch, map[string]interface{}{"title": "Edge AI"}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	data := res.Data(t)
	assert.Equal(t, "Area", data["category"])
	assert.Equal(t, false, data["is_featured"])
	assert.Nil(t, data["status"])
	id := uint(data["id"].(float64))

	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminResearch, id), map[string]interface{}{"status": "Ongoing"}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.Equal(t, "Ongoing", res.Data(t)["status"])

	// an empty status clears it
	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminResearch, id), map[string]interface{}{"status": ""}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.Nil(t, res.Data(t)["status"])

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"unknown category", map[string]interface{}{"title": "X", "category": "Grant"}},
		{"unknown status", map[string]interface{}{"title": "X", "status": "Paused"}},
		{"missing title", map[string]interface{}{"category": "Project"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.JSON(t, http.MethodPost, adminResearch, tt.payload, s.AdminToken)
			assert.Equal(t, http.StatusBadRequest, res.Status, "%s", res.Raw)
		})
	}
}

func TestPublicResearchFilters(t *testing.T) {
	s := testutil.NewServer(t)

	items := []map[string]interface{}{
		{"title": "Compilers", "category": "Area", "display_order": 2},
		{"title": "Smart Grid", "category": "Project", "status": "Ongoing", "is_featured": true, "display_order": 1},
		{"title": "Patent on caching", "category": "Patent", "is_featured": true},
	}
	for _, item := range items {
		res := s.JSON(t, http.MethodPost, adminResearch, item, s.AdminToken)
		require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?category=Project", 1},
		{"?featured=1", 2},
		{"?category=Area&featured=1", 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := s.Get(t, "/api/public/research"+tt.query)
			require.Equal(t, http.StatusOK, res.Status)
			assert.Len(t, res.List(t), tt.want)
			assert.Equal(t, float64(tt.want), res.Body["meta"].(map[string]interface{})["total"])
		})
	}

	res := s.Get(t, "/api/public/research/9999")
	assert.Equal(t, http.StatusNotFound, res.Status)
}
