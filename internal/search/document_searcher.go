// Package search wraps the optional Meilisearch backend used for full-text
// search over the official document directory. The directory's candidate
// listing never goes through here; folded substring matching stays in-process
// so the core views work with no search server at all.
package search

import (
	"errors"
	"fmt"
	"time"

	"github.com/election-directory/app/models"
	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"
)

// DocumentSearcher tìm kiếm văn bản chính thức sử dụng Meilisearch.
type DocumentSearcher struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
	timeout   time.Duration
}

// SearchConfig cấu hình cho Meilisearch.
type SearchConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// DocumentHit is one search result with its relevance score.
type DocumentHit struct {
	Document models.DocumentRecord `json:"document"`
	Score    float64               `json:"score"`
}

// NewDocumentSearcher tạo mới DocumentSearcher với Meilisearch client.
func NewDocumentSearcher(config SearchConfig, logger *zap.Logger) (*DocumentSearcher, error) {
	client := meilisearch.New(config.Host, meilisearch.WithAPIKey(config.APIKey))

	if _, err := client.Health(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	return &DocumentSearcher{
		client:    client,
		logger:    logger,
		indexName: config.IndexName,
		timeout:   config.Timeout,
	}, nil
}

// BuildIndexes cấu hình index cho document search.
func (ds *DocumentSearcher) BuildIndexes() error {
	index := ds.client.Index(ds.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"title", "notes", "doc_type"},
		FilterableAttributes: []string{"cycle_id", "doc_type", "published_date"},
		SortableAttributes:   []string{"published_date"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  3,
				TwoTypos: 7,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	ds.logger.Info("Đã cấu hình index Meilisearch thành công", zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedDocuments nạp document directory của một kỳ bầu cử vào Meilisearch.
func (ds *DocumentSearcher) SeedDocuments(cycleID string, docs []models.DocumentRecord) error {
	if len(docs) == 0 {
		return errors.New("không có dữ liệu để seed")
	}

	index := ds.client.Index(ds.indexName)

	documents := make([]map[string]interface{}, 0, len(docs))
	for _, d := range docs {
		documents = append(documents, map[string]interface{}{
			"id":             cycleID + "-" + d.ID,
			"document_id":    d.ID,
			"cycle_id":       cycleID,
			"title":          d.Title,
			"url":            d.URL,
			"doc_type":       d.DocType,
			"published_date": d.PublishedDate,
			"fetched_date":   d.FetchedDate,
			"notes":          d.Notes,
		})
	}

	batchSize := 1000
	for i := 0; i < len(documents); i += batchSize {
		end := i + batchSize
		if end > len(documents) {
			end = len(documents)
		}

		task, err := index.AddDocuments(documents[i:end], "id")
		if err != nil {
			return fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}
		ds.logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	ds.logger.Info("Đã seed documents thành công",
		zap.String("cycle", cycleID),
		zap.Int("total_documents", len(documents)))
	return nil
}

// Search tìm kiếm văn bản trong một kỳ bầu cử.
func (ds *DocumentSearcher) Search(cycleID, query string, limit int) ([]DocumentHit, error) {
	if query == "" {
		return nil, errors.New("query không được để trống")
	}
	if limit <= 0 {
		limit = 20
	}

	index := ds.client.Index(ds.indexName)
	result, err := index.Search(query, &meilisearch.SearchRequest{
		Limit:  int64(limit),
		Filter: fmt.Sprintf("cycle_id = %q", cycleID),
	})
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm Meilisearch: %w", err)
	}

	return ds.parseHits(result), nil
}

// parseHits parse kết quả từ Meilisearch thành DocumentHit.
func (ds *DocumentSearcher) parseHits(result *meilisearch.SearchResponse) []DocumentHit {
	var hits []DocumentHit
	for _, hit := range result.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		doc := models.DocumentRecord{}
		if id, ok := hitMap["document_id"].(string); ok {
			doc.ID = id
		}
		if title, ok := hitMap["title"].(string); ok {
			doc.Title = title
		}
		if url, ok := hitMap["url"].(string); ok {
			doc.URL = &url
		}
		if docType, ok := hitMap["doc_type"].(string); ok {
			doc.DocType = &docType
		}
		if published, ok := hitMap["published_date"].(string); ok {
			doc.PublishedDate = &published
		}
		if fetched, ok := hitMap["fetched_date"].(string); ok {
			doc.FetchedDate = &fetched
		}
		if notes, ok := hitMap["notes"].(string); ok {
			doc.Notes = &notes
		}

		score := 0.5
		if rankingScore, ok := hitMap["_rankingScore"].(float64); ok {
			score = rankingScore
		}

		hits = append(hits, DocumentHit{Document: doc, Score: score})
	}
	return hits
}
