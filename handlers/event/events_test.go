package event_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/cse-dept/cms-api/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminEvents = "/api/admin/events"

func TestCreateEventValidation(t *testing.T) {
	s := testutil.NewServer(t)

	tests := []struct {
		name    string
		payload map[string]interface{}
		field   string
	}{
		{"missing start", map[string]interface{}{"title": "Hackathon"}, "startsAt"},
		{"unparseable start", map[string]interface{}{"title": "Hackathon", "startsAt": "next friday"}, "startsAt"},
		{"ends before start", map[string]interface{}{"title": "Hackathon", "startsAt": "2025-05-02", "endsAt": "2025-05-01"}, "endsAt"},
		{"bad link", map[string]interface{}{"title": "Hackathon", "startsAt": "2025-05-02", "link": "not a url"}, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.JSON(t, http.MethodPost, adminEvents, tt.payload, s.AdminToken)
			require.Equal(t, http.StatusBadRequest, res.Status, "%s", res.Raw)
			details := res.Body["error"].(map[string]interface{})["details"].([]interface{})
			assert.Equal(t, tt.field, details[0].(map[string]interface{})["field"])
		})
	}
}

func TestPublicEventWindows(t *testing.T) {
	s := testutil.NewServer(t)
	now := time.Now().UTC()

	events := []struct {
		title     string
		startsAt  time.Time
		published bool
	}{
		{"Alumni Meet", now.AddDate(-1, 0, 0), true},
		{"Orientation", now.AddDate(0, -1, 0), true},
		{"Tech Fest", now.AddDate(0, 2, 0), true},
		{"Convocation", now.AddDate(0, 1, 0), true},
		{"Draft Seminar", now.AddDate(0, 1, 0), false},
	}
	for _, ev := range events {
		res := s.JSON(t, http.MethodPost, adminEvents, map[string]interface{}{
			"title":       ev.title,
			"startsAt":    ev.startsAt.Format(time.RFC3339),
			"isPublished": ev.published,
		}, s.AdminToken)
		require.Equal(t, http.StatusCreated, res.Status, "%s", res.Raw)
	}

	titles := func(res testutil.Result) []string {
		var out []string
		for _, item := range res.List(t) {
			out = append(out, item.(map[string]interface{})["title"].(string))
		}
		return out
	}

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Convocation", "Tech Fest"}},
		{"?upcoming=1", []string{"Convocation", "Tech Fest"}},
		{"?upcoming=0", []string{"Orientation", "Alumni Meet"}},
		{"?upcoming=all", []string{"Tech Fest", "Convocation", "Orientation", "Alumni Meet"}},
	}
	for _, tt := range tests {
		t.Run("events"+tt.query, func(t *testing.T) {
			res := s.Get(t, "/api/public/events"+tt.query)
			require.Equal(t, http.StatusOK, res.Status, "%s", res.Raw)
			assert.Equal(t, tt.want, titles(res))
		})
	}

	res := s.Get(t, "/api/public/events?upcoming=soon")
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = s.JSON(t, http.MethodGet, adminEvents, nil, s.AdminToken)
	assert.Len(t, res.List(t), len(events))
}
