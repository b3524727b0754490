package news_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminNews = "/api/admin/news"

func createNews(t *testing.T, s *testutil.Server, payload map[string]interface{}) uint {
	t.Helper()
	res := s.JSON(t, http.MethodPost, adminNews, payload, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	return uint(res.Data(t)["id"].(float64))
}

func TestPublishedNewsPagination(t *testing.T) {
	s := testutil.NewServer(t)

	for day := 1; day <= 12; day++ {
		createNews(t, s, map[string]interface{}{
			"title": fmt.Sprintf("Story %02d", day),
			"date":  fmt.Sprintf("2025-01-%02d", day),
		})
	}
	createNews(t, s, map[string]interface{}{"title": "Embargoed", "date": "2025-02-01", "isPublished": false})

	res := s.Get(t, "/api/public/news")
	require.Equal(t, http.StatusOK, res.Status)
	list := res.List(t)
	require.Len(t, list, 10)
	assert.Equal(t, "Story 12", list[0].(map[string]interface{})["title"])

	meta := res.Body["meta"].(map[string]interface{})
	assert.Equal(t, float64(12), meta["total"])
	assert.Equal(t, float64(2), meta["totalPages"])

	res = s.Get(t, "/api/public/news?page=2")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Len(t, res.List(t), 2)

	res = s.Get(t, "/api/public/news?page=5")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []interface{}{}, res.List(t))

	res = s.JSON(t, http.MethodGet, adminNews, nil, s.AdminToken)
	assert.Len(t, res.List(t), 13)
}

func TestUnpublishedNewsHiddenFromPublic(t *testing.T) {
	s := testutil.NewServer(t)
	id := createNews(t, s, map[string]interface{}{"title": "Draft", "isPublished": false})

	res := s.Get(t, fmt.Sprintf("/api/public/news/%d", id))
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminNews, id), map[string]interface{}{"isPublished": true}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)

	res = s.Get(t, fmt.Sprintf("/api/public/news/%d", id))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Draft", res.Data(t)["title"])
}

func TestNewsDefaults(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, adminNews, map[string]interface{}{
		"title": "Placement record",
		"body":  `<p>Record year</p><iframe src="https://evil.example"></iframe>`,
	}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)

	data := res.Data(t)
	assert.Equal(t, true, data["isPublished"])
	assert.NotEmpty(t, data["date"])
	assert.NotContains(t, data["body"], "iframe")

	res = s.JSON(t, http.MethodPost, adminNews, map[string]interface{}{"title": "Bad date", "date": "01/13/2025"}, s.AdminToken)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}
