package audit_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminWritesAreAudited(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, "/api/admin/directory", map[string]interface{}{"name": "Office", "role": "Reception"}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	id := uint(res.Data(t)["id"].(float64))
	s.Audit.Wait()

	res = s.JSON(t, http.MethodDelete, fmt.Sprintf("/api/admin/directory/%d", id), nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status)

	// reads and rejected requests are not audited
	s.JSON(t, http.MethodGet, "/api/admin/directory", nil, s.AdminToken)
	s.JSON(t, http.MethodPost, "/api/admin/directory", map[string]interface{}{"name": "x"}, s.EditorToken)
	s.Audit.Wait()

	res = s.JSON(t, http.MethodGet, "/api/admin/audit-logs", nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	logs := res.List(t)
	require.Len(t, logs, 2)

	latest := logs[0].(map[string]interface{})
	assert.Equal(t, "delete", latest["action"])
	assert.Equal(t, "directory", latest["resource"])
	assert.Equal(t, float64(id), latest["resource_id"])
	assert.Equal(t, float64(s.Admin.ID), latest["admin_id"])

	res = s.JSON(t, http.MethodGet, "/api/admin/audit-logs?action=create", nil, s.AdminToken)
	require.Len(t, res.List(t), 1)
	entryID := uint(res.List(t)[0].(map[string]interface{})["id"].(float64))

	res = s.JSON(t, http.MethodGet, fmt.Sprintf("/api/admin/audit-logs/%d", entryID), nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, float64(http.StatusCreated), res.Data(t)["status_code"])

	res = s.JSON(t, http.MethodGet, "/api/admin/audit-logs/9999", nil, s.AdminToken)
	assert.Equal(t, http.StatusNotFound, res.Status)
}
