package slug

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/cse-dept/cms-api/model"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Fallback is used when a name has no sluggable characters at all
const Fallback = "person"

var (
	reDisallowed = regexp.MustCompile(`[^a-z0-9 -]`)
	reSpaces     = regexp.MustCompile(`\s+`)
	reHyphens    = regexp.MustCompile(`-+`)
)

// Generate turns a display name into a URL slug:
// "Dr. Jane Doe" -> "dr-jane-doe". Accents are folded first (é -> e).
func Generate(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}

	s = reDisallowed.ReplaceAllString(b.String(), "")
	s = reSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
	s = reHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		return Fallback
	}
	return s
}

// ExistsFunc reports whether a slug is already taken
type ExistsFunc func(candidate string) (bool, error)

// Unique appends -1, -2, ... to base until exists reports the slug as free
func Unique(base string, exists ExistsFunc) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// PeopleExists checks the people table, ignoring excludeID (0 on create)
func PeopleExists(db *gorm.DB, excludeID uint) ExistsFunc {
	return func(candidate string) (bool, error) {
		var count int64
		q := db.Model(&model.People{}).Where("slug = ?", candidate)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}
}
