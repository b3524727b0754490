package facility_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminFacilities = "/api/admin/facilities"

func TestFacilityVisibility(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, adminFacilities, map[string]interface{}{
		"name":           "HPC Lab",
		"capacity":       40,
		"gallery_images": []string{"/uploads/images/a.png"},
	}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	lab := res.Data(t)
	assert.Equal(t, "Laboratory", lab["category"])
	assert.Equal(t, true, lab["is_active"])
	assert.Equal(t, []interface{}{"/uploads/images/a.png"}, lab["gallery_images"])

	res = s.JSON(t, http.MethodPost, adminFacilities, map[string]interface{}{
		"name":      "Old Seminar Hall",
		"category":  "Infrastructure",
		"is_active": false,
	}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	hall := res.Data(t)
	assert.Equal(t, []interface{}{}, hall["gallery_images"])
	hallID := uint(hall["id"].(float64))

	res = s.Get(t, "/api/public/facilities")
	require.Equal(t, http.StatusOK, res.Status)
	list := res.List(t)
	require.Len(t, list, 1)
	assert.Equal(t, "HPC Lab", list[0].(map[string]interface{})["name"])

	res = s.Get(t, "/api/public/facilities?category=Infrastructure")
	assert.Equal(t, []interface{}{}, res.List(t))

	res = s.Get(t, fmt.Sprintf("/api/public/facilities/%d", hallID))
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminFacilities, hallID), map[string]interface{}{"is_active": true}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)

	res = s.Get(t, fmt.Sprintf("/api/public/facilities/%d", hallID))
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []interface{}{}, res.Data(t)["gallery_images"])

	res = s.JSON(t, http.MethodPost, adminFacilities, map[string]interface{}{"name": "Bad", "category": "Cafeteria"}, s.AdminToken)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}
