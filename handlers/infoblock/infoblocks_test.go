package infoblock_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminInfoBlocks = "/api/admin/info-blocks"

func TestInfoBlockDuplicateKey(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, adminInfoBlocks, map[string]interface{}{
		"key":   "hod-message",
		"title": "From the HoD",
		"body":  "<p>Welcome</p>",
	}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)

	res = s.JSON(t, http.MethodPost, adminInfoBlocks, map[string]interface{}{"key": "hod-message"}, s.AdminToken)
	require.Equal(t, http.StatusConflict, res.Status)
	errBody := res.Body["error"].(map[string]interface{})
	assert.Equal(t, "CONFLICT", errBody["code"])
	assert.Equal(t, "key", errBody["details"].([]interface{})[0].(map[string]interface{})["field"])

	res = s.JSON(t, http.MethodPost, adminInfoBlocks, map[string]interface{}{"key": "vision"}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status)
	visionID := uint(res.Data(t)["id"].(float64))

	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminInfoBlocks, visionID), map[string]interface{}{"key": "hod-message"}, s.AdminToken)
	assert.Equal(t, http.StatusConflict, res.Status)

	// keeping its own key is not a conflict
	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminInfoBlocks, visionID), map[string]interface{}{"key": "vision", "title": "Vision"}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.Equal(t, "Vision", res.Data(t)["title"])
}

func TestPublicInfoBlockByKey(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.JSON(t, http.MethodPost, adminInfoBlocks, map[string]interface{}{
		"key":  "about",
		"body": `<p onclick="steal()">About <b>us</b></p><script>x()</script>`,
	}, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)

	res = s.Get(t, "/api/public/info/about")
	require.Equal(t, http.StatusOK, res.Status)
	body := res.Data(t)["body"].(string)
	assert.Contains(t, body, "<b>us</b>")
	assert.NotContains(t, body, "onclick")
	assert.NotContains(t, body, "script")

	res = s.Get(t, "/api/public/info/missing")
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Info block not found", res.Body["error"].(map[string]interface{})["message"])
}
