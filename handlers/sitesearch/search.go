// Package sitesearch serves the public site-wide search box.
package sitesearch

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/cse-dept/cms-api/services/search"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultLimit   = 20
	maxLimit       = 50
	minQueryLength = 2
)

// SearchHandler queries the configured search backend
type SearchHandler struct {
	indexer search.Indexer
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(indexer search.Indexer) *SearchHandler {
	return &SearchHandler{indexer: indexer}
}

// Search handles GET /api/public/search?q=&type=&limit=
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if utf8.RuneCountInString(q) < minQueryLength {
		return response.BadRequest(c, "Query must be at least 2 characters")
	}

	kind := strings.TrimSpace(c.Query("type"))
	if kind != "" && !search.ValidKind(kind) {
		return response.BadRequest(c, "Unknown type. Use one of: "+strings.Join(search.Kinds, ", "))
	}

	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	docs, err := h.indexer.Search(c.UserContext(), q, kind, limit)
	if err != nil {
		return err
	}
	if len(docs) > limit {
		docs = docs[:limit]
	}

	return response.List(c, docs)
}
