package slider_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/cse-dept/cms-api/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminSliders = "/api/admin/sliders"

func TestCreateSliderRequiresImage(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Multipart(t, http.MethodPost, adminSliders, map[string]string{"caption": "Welcome"}, nil, s.AdminToken)
	require.Equal(t, http.StatusBadRequest, res.Status)

	details := res.Body["error"].(map[string]interface{})["details"].([]interface{})
	require.Len(t, details, 1)
	assert.Equal(t, "image", details[0].(map[string]interface{})["field"])

	res = s.Multipart(t, http.MethodPost, adminSliders, map[string]string{"caption": "Welcome"},
		[]testutil.File{{Field: "image", Filename: "notes.pdf", Content: fixtures.PDF(1)}}, s.AdminToken)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestSliderImageReplacement(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Multipart(t, http.MethodPost, adminSliders, map[string]string{"caption": "Open day", "order": "2"},
		[]testutil.File{{Field: "image", Filename: "open-day.png", Content: fixtures.PNG(64, 32)}}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)

	created := res.Data(t)
	assert.Equal(t, true, created["isActive"])
	oldImage := created["image_path"].(string)
	require.True(t, s.FileExists(oldImage))
	id := uint(created["id"].(float64))

	res = s.Multipart(t, http.MethodPut, fmt.Sprintf("%s/%d", adminSliders, id), map[string]string{"isActive": "false"},
		[]testutil.File{{Field: "image", Filename: "open-day-2.jpg", Content: fixtures.JPEG(64, 32)}}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)

	updated := res.Data(t)
	assert.Equal(t, false, updated["isActive"])
	assert.Equal(t, "Open day", updated["caption"])
	newImage := updated["image_path"].(string)
	assert.True(t, s.FileExists(newImage))
	assert.False(t, s.FileExists(oldImage))

	files := res.Body["files"].([]interface{})
	require.Len(t, files, 1)
	assert.Equal(t, true, files[0].(map[string]interface{})["deleted"])

	// a caption-only update leaves the image alone and reports no files
	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminSliders, id), map[string]interface{}{"caption": "Open day 2025"}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status)
	assert.NotContains(t, res.Body, "files")
	assert.True(t, s.FileExists(newImage))

	res = s.JSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", adminSliders, id), nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status)
	assert.False(t, s.FileExists(newImage))
}

func TestSeededSliderPathIsSkippedOnDelete(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Multipart(t, http.MethodPost, adminSliders, nil,
		[]testutil.File{{Field: "image", Filename: "a.png", Content: fixtures.PNG(8, 8)}}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status)
	id := uint(res.Data(t)["id"].(float64))
	require.NoError(t, s.DB.Exec("UPDATE sliders SET image_path = ? WHERE id = ?", "https://cdn.example.org/hero.jpg", id).Error)

	res = s.JSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", adminSliders, id), nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	file := res.Body["files"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, false, file["deleted"])
	assert.Equal(t, true, file["skipped"])
}

func TestPublicSlidersOnlyActive(t *testing.T) {
	s := testutil.NewServer(t)

	for i, active := range []string{"true", "false", "true"} {
		res := s.Multipart(t, http.MethodPost, adminSliders,
			map[string]string{"caption": fmt.Sprintf("Slide %d", i), "order": fmt.Sprint(3 - i), "isActive": active},
			[]testutil.File{{Field: "image", Filename: "s.png", Content: fixtures.PNG(8, 8)}}, s.AdminToken)
		require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	}

	res := s.Get(t, "/api/public/sliders")
	require.Equal(t, http.StatusOK, res.Status)
	list := res.List(t)
	require.Len(t, list, 2)
	assert.Equal(t, "Slide 2", list[0].(map[string]interface{})["caption"])
	assert.Equal(t, "Slide 0", list[1].(map[string]interface{})["caption"])

	res = s.JSON(t, http.MethodGet, adminSliders, nil, s.AdminToken)
	assert.Len(t, res.List(t), 3)
}

func TestSliderNotFound(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodGet, adminSliders+"/77", nil, s.AdminToken)
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Slider not found", res.Body["error"].(map[string]interface{})["message"])

	res = s.JSON(t, http.MethodGet, adminSliders+"/zero", nil, s.AdminToken)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}
