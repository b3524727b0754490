// Package search indexes public CMS content for the site-wide search box.
// Meilisearch is used when configured; otherwise queries fall back to SQL.
package search

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cse-dept/cms-api/model"
)

// Content kinds exposed through search
const (
	KindNews        = "news"
	KindEvent       = "event"
	KindPerson      = "person"
	KindProgram     = "program"
	KindResearch    = "research"
	KindFacility    = "facility"
	KindAchievement = "achievement"
)

// Kinds lists every searchable kind
var Kinds = []string{KindNews, KindEvent, KindPerson, KindProgram, KindResearch, KindFacility, KindAchievement}

// ValidKind reports whether kind is searchable
func ValidKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

const snippetLength = 200

// Document is one searchable record
type Document struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	RecordID  uint   `json:"record_id"`
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	Slug      string `json:"slug,omitempty"`
	Published bool   `json:"published"`
}

// Indexer is implemented by search backends
type Indexer interface {
	Index(ctx context.Context, docs ...Document) error
	Remove(ctx context.Context, kind string, recordID uint) error
	Search(ctx context.Context, query, kind string, limit int) ([]Document, error)
	Name() string
}

// DocumentID is the index key for a record
func DocumentID(kind string, recordID uint) string {
	return fmt.Sprintf("%s-%d", kind, recordID)
}

func newDocument(kind string, id uint, title, body string, published bool) Document {
	return Document{
		ID:        DocumentID(kind, id),
		Kind:      kind,
		RecordID:  id,
		Title:     title,
		Snippet:   snippet(body),
		Published: published,
	}
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= snippetLength {
		return s
	}
	r := []rune(s)
	return string(r[:snippetLength]) + "…"
}

func FromNews(n model.News) Document {
	body := n.Summary
	if body == "" {
		body = n.Body
	}
	return newDocument(KindNews, n.ID, n.Title, body, n.IsPublished)
}

func FromEvent(e model.Event) Document {
	return newDocument(KindEvent, e.ID, e.Title, e.Venue+" "+e.Description, e.IsPublished)
}

func FromPerson(p model.People) Document {
	doc := newDocument(KindPerson, p.ID, p.Name, p.Designation+" "+p.ResearchAreas, true)
	doc.Slug = p.Slug
	return doc
}

func FromProgram(p model.Program) Document {
	return newDocument(KindProgram, p.ID, p.Name, p.Description, true)
}

func FromResearch(r model.Research) Document {
	return newDocument(KindResearch, r.ID, r.Title, r.Description, true)
}

func FromFacility(f model.Facility) Document {
	return newDocument(KindFacility, f.ID, f.Name, f.Description, f.IsActive)
}

func FromAchievement(a model.Achievement) Document {
	return newDocument(KindAchievement, a.ID, a.Title, a.Students+" "+a.Description, a.IsPublished)
}
