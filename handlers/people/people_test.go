package people_test

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/cse-dept/cms-api/handlers/people"
	"github.com/cse-dept/cms-api/testutil"
	"github.com/cse-dept/cms-api/testutil/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminPeople = "/api/admin/people"

func createPerson(t *testing.T, s *testutil.Server, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	res := s.JSON(t, http.MethodPost, adminPeople, payload, s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	return res.Data(t)
}

func TestCreatePersonSlugs(t *testing.T) {
	s := testutil.NewServer(t)

	first := createPerson(t, s, map[string]interface{}{"name": "Dr. Jane Doe", "designation": "Professor"})
	second := createPerson(t, s, map[string]interface{}{"name": "Dr. Jane Doe", "designation": "Lecturer"})
	third := createPerson(t, s, map[string]interface{}{"name": "Dr Jane  Doe!"})

	assert.Equal(t, "dr-jane-doe", first["slug"])
	assert.Equal(t, "dr-jane-doe-1", second["slug"])
	assert.Equal(t, "dr-jane-doe-2", third["slug"])
	assert.Equal(t, people.DefaultDepartment, first["department"])
	assert.Equal(t, []interface{}{}, first["education"])
	assert.Equal(t, []interface{}{}, first["publications"])
}

func TestUpdatePersonKeepsOwnSlug(t *testing.T) {
	s := testutil.NewServer(t)
	person := createPerson(t, s, map[string]interface{}{"name": "Alan Turing"})
	id := uint(person["id"].(float64))

	// renaming to the same slug must not collide with itself
	res := s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminPeople, id),
		map[string]interface{}{"name": "Alan  Turing"}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.Equal(t, "alan-turing", res.Data(t)["slug"])

	res = s.JSON(t, http.MethodPut, fmt.Sprintf("%s/%d", adminPeople, id),
		map[string]interface{}{"name": "Grace Hopper"}, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "grace-hopper", res.Data(t)["slug"])

	res = s.Get(t, "/api/public/people/grace-hopper")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Grace Hopper", res.Data(t)["name"])

	res = s.Get(t, "/api/public/people/alan-turing")
	assert.Equal(t, http.StatusNotFound, res.Status)
	assert.Equal(t, "Faculty member not found", res.Body["error"].(map[string]interface{})["message"])
}

func TestPersonListFields(t *testing.T) {
	s := testutil.NewServer(t)

	tests := []struct {
		name      string
		education interface{}
		status    int
		want      []interface{}
	}{
		{"array", []string{"PhD, IIT"}, http.StatusCreated, []interface{}{"PhD, IIT"}},
		{"string holding array", `["M.Tech","B.Tech"]`, http.StatusCreated, []interface{}{"M.Tech", "B.Tech"}},
		{"null", nil, http.StatusCreated, []interface{}{}},
		{"object", map[string]string{"degree": "PhD"}, http.StatusBadRequest, nil},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.JSON(t, http.MethodPost, adminPeople, map[string]interface{}{
				"name":      fmt.Sprintf("Person %d", i),
				"education": tt.education,
			}, s.AdminToken)
			require.Equal(t, tt.status, res.Status, "%s", res.Raw)
			if tt.want != nil {
				assert.Equal(t, tt.want, res.Data(t)["education"])
			}
		})
	}
}

func TestPublicPeoplePagination(t *testing.T) {
	s := testutil.NewServer(t)
	for i := 0; i < 5; i++ {
		createPerson(t, s, map[string]interface{}{"name": fmt.Sprintf("Faculty %d", i), "order": i})
	}

	res := s.Get(t, "/api/public/people?page=2&limit=2")
	require.Equal(t, http.StatusOK, res.Status)
	list := res.List(t)
	require.Len(t, list, 2)
	assert.Equal(t, "Faculty 2", list[0].(map[string]interface{})["name"])

	meta := res.Body["meta"].(map[string]interface{})
	assert.Equal(t, float64(5), meta["total"])
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(2), meta["limit"])
	assert.Equal(t, float64(3), meta["totalPages"])

	res = s.Get(t, "/api/public/people?page=9&limit=2")
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, []interface{}{}, res.List(t))
	assert.Equal(t, float64(5), res.Body["meta"].(map[string]interface{})["total"])
}

func TestPublicPeopleFilters(t *testing.T) {
	s := testutil.NewServer(t)
	createPerson(t, s, map[string]interface{}{"name": "Ada Lovelace", "designation": "Professor", "research_areas": "Compilers"})
	createPerson(t, s, map[string]interface{}{"name": "Edsger Dijkstra", "designation": "Assistant Professor", "research_areas": "Distributed Systems"})
	createPerson(t, s, map[string]interface{}{"name": "Barbara Liskov", "designation": "Lab Assistant", "research_areas": "Type Systems"})
	createPerson(t, s, map[string]interface{}{"name": "Alan Turing", "designation": "Visiting_Faculty", "research_areas": "Computability"})

	tests := []struct {
		param string
		value string
		want  int
	}{
		{"designation", "Professor", 2},
		{"designation", "professor", 2},
		{"area", "SYSTEMS", 2},
		{"q", "ada", 1},
		{"q", "ADA LOVE", 1},
		{"q", "nobody", 0},
		{"q", "%", 0},
		{"q", "_", 1},
		{"designation", "Prof%sor", 0},
		{"designation", "visiting_", 1},
	}
	for _, tt := range tests {
		t.Run(tt.param+"="+tt.value, func(t *testing.T) {
			res := s.Get(t, "/api/public/people?"+tt.param+"="+url.QueryEscape(tt.value))
			require.Equal(t, http.StatusOK, res.Status)
			assert.Len(t, res.List(t), tt.want)
		})
	}
}

func TestPublicPeopleHugePage(t *testing.T) {
	s := testutil.NewServer(t)
	createPerson(t, s, map[string]interface{}{"name": "Only Member"})

	for _, page := range []string{"100000000000000000", "9223372036854775807"} {
		res := s.Get(t, "/api/public/people?limit=100&page="+page)
		require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
		assert.Equal(t, []interface{}{}, res.List(t))
		assert.Equal(t, float64(1), res.Body["meta"].(map[string]interface{})["total"])
	}
}

func TestPersonPhotoReplacement(t *testing.T) {
	s := testutil.NewServer(t)

	res := s.Multipart(t, http.MethodPost, adminPeople,
		map[string]string{"name": "Donald Knuth", "publications": `["TAOCP"]`},
		[]testutil.File{{Field: "photo", Filename: "knuth.png", Content: fixtures.PNG(32, 32)}},
		s.AdminToken)
	require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	oldPhoto := res.Data(t)["photo_path"].(string)
	assert.Equal(t, []interface{}{"TAOCP"}, res.Data(t)["publications"])
	id := uint(res.Data(t)["id"].(float64))

	res = s.Multipart(t, http.MethodPut, fmt.Sprintf("%s/%d", adminPeople, id), nil,
		[]testutil.File{{Field: "photo", Filename: "knuth.jpg", Content: fixtures.JPEG(32, 32)}},
		s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
	assert.False(t, s.FileExists(oldPhoto))
	assert.True(t, s.FileExists(res.Data(t)["photo_path"].(string)))

	res = s.JSON(t, http.MethodDelete, fmt.Sprintf("%s/%d", adminPeople, id), nil, s.AdminToken)
	require.Equal(t, http.StatusOK, res.Status)
	res = s.JSON(t, http.MethodGet, fmt.Sprintf("%s/%d", adminPeople, id), nil, s.AdminToken)
	assert.Equal(t, http.StatusNotFound, res.Status)
}
