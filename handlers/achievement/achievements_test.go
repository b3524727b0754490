package achievement_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/cse-dept/cms-api/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminAchievements = "/api/admin/achievements"

func TestAchievementLifecycle(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Multipart(t, http.MethodPost, adminAchievements,
		map[string]string{"title": "ICPC Regionals", "students": "A. Rao, B. Sen"},
		[]testutil.File{{Field: "image", Filename: "team.jpg", Content: fixtures.JPEG(40, 30)}}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	won := res.Data(t)
	assert.Equal(t, true, won["isPublished"])
	image := won["image_path"].(string)
	assert.True(t, s.FileExists(image))

	res = s.JSON(t, http.MethodPost, adminAchievements, map[string]interface{}{"title": "Pending", "isPublished": false}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status)

	res = s.Get(t, "/api/public/achievements")
	require.Equal(t, http.StatusOK, res.Status)
	list := res.List(t)
	require.Len(t, list, 1)
	assert.Equal(t, "ICPC Regionals", list[0].(map[string]interface{})["title"])

	res = s.JSON(t, http.MethodDelete, fmt.Sprintf("%s/%v", adminAchievements, won["id"]), nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.False(t, s.FileExists(image))
	files := res.Body["files"].([]interface{})
	assert.Equal(t, image, files[0].(map[string]interface{})["url"])

	res = s.JSON(t, http.MethodPost, adminAchievements, map[string]interface{}{"title": "Bad link", "link": "nope"}, s.AdminToken)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}
