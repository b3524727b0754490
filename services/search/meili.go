package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"
)

// IndexUID is the Meilisearch index holding all CMS documents
const IndexUID = "cms_content"

// MeiliIndexer stores documents in Meilisearch
type MeiliIndexer struct {
	client *meilisearch.Client
	index  string
}

// NewMeiliIndexer connects to Meilisearch and ensures the index exists
func NewMeiliIndexer(host, apiKey string) *MeiliIndexer {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	// best effort, the index is created lazily by the first AddDocuments too
	if _, err := client.GetIndex(IndexUID); err != nil {
		if _, err := client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        IndexUID,
			PrimaryKey: "id",
		}); err != nil {
			log.Printf("Failed to create meilisearch %s index: %v", IndexUID, err)
		}
	}

	index := client.Index(IndexUID)
	if _, err := index.UpdateFilterableAttributes(&[]string{"kind", "published"}); err != nil {
		log.Printf("Failed to update filterable attributes: %v", err)
	}
	if _, err := index.UpdateSearchableAttributes(&[]string{"title", "snippet"}); err != nil {
		log.Printf("Failed to update searchable attributes: %v", err)
	}

	return &MeiliIndexer{client: client, index: IndexUID}
}

func (m *MeiliIndexer) Name() string { return "meilisearch" }

func (m *MeiliIndexer) Index(_ context.Context, docs ...Document) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := m.client.Index(m.index).AddDocuments(docs, "id")
	return err
}

func (m *MeiliIndexer) Remove(_ context.Context, kind string, recordID uint) error {
	_, err := m.client.Index(m.index).DeleteDocument(DocumentID(kind, recordID))
	return err
}

func (m *MeiliIndexer) Search(_ context.Context, query, kind string, limit int) ([]Document, error) {
	request := &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: "published = true",
	}
	if kind != "" {
		request.Filter = fmt.Sprintf("published = true AND kind = %q", kind)
	}

	resp, err := m.client.Index(m.index).Search(query, request)
	if err != nil {
		return nil, err
	}

	// hits come back as generic maps
	raw, err := json.Marshal(resp.Hits)
	if err != nil {
		return nil, err
	}
	docs := []Document{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
