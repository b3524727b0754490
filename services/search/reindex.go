package search

import (
	"context"

	"github.com/cse-dept/cms-api/model"
	"gorm.io/gorm"
)

// Reindex pushes every searchable record to idx and returns how many
// documents were sent.
func Reindex(ctx context.Context, db *gorm.DB, idx Indexer) (int, error) {
	db = db.WithContext(ctx)
	var docs []Document

	var news []model.News
	if err := db.Find(&news).Error; err != nil {
		return 0, err
	}
	for _, n := range news {
		docs = append(docs, FromNews(n))
	}

	var events []model.Event
	if err := db.Find(&events).Error; err != nil {
		return 0, err
	}
	for _, e := range events {
		docs = append(docs, FromEvent(e))
	}

	var people []model.People
	if err := db.Find(&people).Error; err != nil {
		return 0, err
	}
	for _, p := range people {
		docs = append(docs, FromPerson(p))
	}

	var programs []model.Program
	if err := db.Find(&programs).Error; err != nil {
		return 0, err
	}
	for _, p := range programs {
		docs = append(docs, FromProgram(p))
	}

	var research []model.Research
	if err := db.Find(&research).Error; err != nil {
		return 0, err
	}
	for _, r := range research {
		docs = append(docs, FromResearch(r))
	}

	var facilities []model.Facility
	if err := db.Find(&facilities).Error; err != nil {
		return 0, err
	}
	for _, f := range facilities {
		docs = append(docs, FromFacility(f))
	}

	var achievements []model.Achievement
	if err := db.Find(&achievements).Error; err != nil {
		return 0, err
	}
	for _, a := range achievements {
		docs = append(docs, FromAchievement(a))
	}

	// meilisearch accepts large batches but keep payloads bounded
	const batch = 500
	for start := 0; start < len(docs); start += batch {
		end := start + batch
		if end > len(docs) {
			end = len(docs)
		}
		if err := idx.Index(ctx, docs[start:end]...); err != nil {
			return start, err
		}
	}
	return len(docs), nil
}
