// Package query holds WHERE fragments shared by list and search endpoints.
package query

import (
	"strings"

	"gorm.io/gorm"
)

// likeEscape is accepted by MySQL, Postgres and SQLite alike. A backslash
// would need doubling inside MySQL string literals.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")

// ContainsPattern turns free text into a lower-cased LIKE pattern that
// matches it anywhere, with % and _ taken literally.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(term))) + "%"
}

// ContainsClause is the condition for ContainsPattern over any of columns.
// Bind the pattern once per column.
func ContainsClause(columns ...string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

// Contains narrows db to rows where any of columns contains term, ignoring
// case. Columns are trusted identifiers.
func Contains(db *gorm.DB, term string, columns ...string) *gorm.DB {
	pattern := ContainsPattern(term)
	args := make([]interface{}, len(columns))
	for i := range args {
		args[i] = pattern
	}
	return db.Where(ContainsClause(columns...), args...)
}
