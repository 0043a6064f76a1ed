// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search provides full-text search over posts.

The index lives in memory and is rebuilt from the content store whenever it
is marked stale; the CMS remains the source of truth. Japanese and English
text share the CJK analyzer, which bigrams kanji and kana and tokenizes
Latin words.
*/
package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/taibuivan/techblog/internal/content/locale"
	"github.com/taibuivan/techblog/internal/core/blog"
)

// document is one localized post record in the index.
type document struct {
	PostID  string
	Locale  string
	Title   string
	Summary string
	Body    string
	Topics  []string
}

// Hit is one search result.
type Hit struct {
	ID          string              `json:"id"`
	LocalizedID string              `json:"localized_id"`
	Title       string              `json:"title"`
	Summary     string              `json:"summary"`
	Score       float64             `json:"score"`
	Fragments   map[string][]string `json:"fragments,omitempty"`
}

// Index wraps an in-memory Bleve index that can be swapped atomically.
type Index struct {
	mu    sync.RWMutex
	index bleve.Index
}

// NewIndex returns an empty index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = cjk.AnalyzerName

	keywordField := bleve.NewKeywordFieldMapping()
	keywordField.IncludeInAll = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("PostID", keywordField)
	docMapping.AddFieldMappingsAt("Locale", keywordField)
	docMapping.AddFieldMappingsAt("Title", textField)
	docMapping.AddFieldMappingsAt("Summary", textField)
	docMapping.AddFieldMappingsAt("Body", textField)
	docMapping.AddFieldMappingsAt("Topics", textField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName
	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}

// Rebuild replaces the index contents with posts.
// Searches keep using the previous contents until the new index is complete.
func (i *Index) Rebuild(posts []*blog.Post) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	batch := fresh.NewBatch()
	for _, post := range posts {
		text := post.Text(post.Locale)

		topics := make([]string, 0, len(post.Topics))
		for _, t := range post.Topics {
			topics = append(topics, t.Label)
		}

		doc := document{
			PostID:  post.ID,
			Locale:  post.Locale.String(),
			Title:   text.Title,
			Summary: text.Summary,
			Body:    post.Body,
			Topics:  topics,
		}
		if err := batch.Index(post.LocalizedID(), doc); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("batch index %s: %w", post.LocalizedID(), err)
		}
	}

	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("commit batch: %w", err)
	}

	i.mu.Lock()
	previous := i.index
	i.index = fresh
	i.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}
	return nil
}

// Search runs a query-string search restricted to locale l.
func (i *Index) Search(queryStr string, l locale.Locale, limit int) ([]Hit, error) {
	textQuery := bleve.NewQueryStringQuery(queryStr)

	localeQuery := bleve.NewTermQuery(l.String())
	localeQuery.SetField("Locale")

	request := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(textQuery, localeQuery), limit, 0, false)
	request.Highlight = bleve.NewHighlightWithStyle("html")
	request.Fields = []string{"PostID", "Title", "Summary"}

	i.mu.RLock()
	results, err := i.index.Search(request)
	i.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(results.Hits))
	for _, match := range results.Hits {
		hit := Hit{
			LocalizedID: match.ID,
			Score:       match.Score,
			Fragments:   match.Fragments,
		}
		if postID, ok := match.Fields["PostID"].(string); ok {
			hit.ID = postID
		}
		if title, ok := match.Fields["Title"].(string); ok {
			hit.Title = title
		}
		if summary, ok := match.Fields["Summary"].(string); ok {
			hit.Summary = summary
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Count returns the number of documents in the index.
func (i *Index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

// Close releases the index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}
