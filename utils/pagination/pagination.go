package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultPage = 1
	MaxLimit    = 100
)

// Params holds the page window requested by a client
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of rows to skip
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Parse reads ?page= and ?limit=. Missing or malformed values fall back to
// page 1 and defaultLimit; limit is clamped to [1, MaxLimit]. page is capped
// so Offset never overflows.
func Parse(c *fiber.Ctx, defaultLimit int) Params {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := atoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}

	return Params{Page: page, Limit: limit}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
