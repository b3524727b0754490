package search

import (
	"context"
	"sort"
	"strings"

	"github.com/cse-dept/cms-api/model"
	dbquery "github.com/cse-dept/cms-api/utils/query"
	"gorm.io/gorm"
)

// DBIndexer answers searches with case-insensitive LIKE queries against the
// content tables.
// Index and Remove are no-ops since the tables are the index.
type DBIndexer struct {
	db *gorm.DB
}

// NewDBIndexer creates a SQL-backed indexer
func NewDBIndexer(db *gorm.DB) *DBIndexer {
	return &DBIndexer{db: db}
}

func (d *DBIndexer) Name() string { return "database" }

func (d *DBIndexer) Index(context.Context, ...Document) error { return nil }

func (d *DBIndexer) Remove(context.Context, string, uint) error { return nil }

func (d *DBIndexer) Search(ctx context.Context, query, kind string, limit int) ([]Document, error) {
	db := d.db.WithContext(ctx)
	docs := []Document{}

	want := func(k string) bool { return kind == "" || kind == k }

	if want(KindNews) {
		var rows []model.News
		if err := dbquery.Contains(db.Where("is_published = ?", true), query, "title", "summary").
			Order("date DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromNews(r))
		}
	}

	if want(KindEvent) {
		var rows []model.Event
		if err := dbquery.Contains(db.Where("is_published = ?", true), query, "title", "description").
			Order("starts_at DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromEvent(r))
		}
	}

	if want(KindPerson) {
		var rows []model.People
		if err := dbquery.Contains(db, query, "name", "designation", "research_areas").
			Order("sort_order ASC, name ASC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromPerson(r))
		}
	}

	if want(KindProgram) {
		var rows []model.Program
		if err := dbquery.Contains(db, query, "name", "description").
			Order("display_order ASC, id ASC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromProgram(r))
		}
	}

	if want(KindResearch) {
		var rows []model.Research
		if err := dbquery.Contains(db, query, "title", "description").
			Order("display_order ASC, id ASC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromResearch(r))
		}
	}

	if want(KindFacility) {
		var rows []model.Facility
		if err := dbquery.Contains(db.Where("is_active = ?", true), query, "name", "description").
			Order("display_order ASC, id ASC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromFacility(r))
		}
	}

	if want(KindAchievement) {
		var rows []model.Achievement
		if err := dbquery.Contains(db.Where("is_published = ?", true), query, "title", "description").
			Order("created_at DESC").Limit(limit).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, r := range rows {
			docs = append(docs, FromAchievement(r))
		}
	}

	// title matches first, then kind order
	lowered := strings.ToLower(strings.TrimSpace(query))
	sort.SliceStable(docs, func(i, j int) bool {
		ti := strings.Contains(strings.ToLower(docs[i].Title), lowered)
		tj := strings.Contains(strings.ToLower(docs[j].Title), lowered)
		return ti && !tj
	})

	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}
