// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"
	"fmt"
	"time"
)

// DefaultListLimit is the page size of a single store list call.
const DefaultListLimit = 10

// ListOptions narrows a store-side listing.
type ListOptions struct {
	Limit   int
	Offset  int
	Filters string
	Orders  string
}

// ByTopic returns options filtered to posts tagged with topicID.
func (o ListOptions) ByTopic(topicID string) ListOptions {
	o.Filters = "topics[contains]" + topicID
	return o
}

// ByDateRange returns options filtered to posts published strictly between from and to.
func (o ListOptions) ByDateRange(from, to time.Time) ListOptions {
	o.Filters = fmt.Sprintf("publishedAt[greater_than]%s[and]publishedAt[less_than]%s",
		from.UTC().Format(time.DateOnly), to.UTC().Format(time.DateOnly))
	return o
}

// Repository reads posts from the content store.
// Errors are raw store errors; the service classifies them.
type Repository interface {
	// List returns one page and the total number of matching records.
	List(ctx context.Context, opts ListOptions) ([]*Post, int, error)

	// ListAll returns every matching record; Limit and Offset are ignored.
	ListAll(ctx context.Context, opts ListOptions) ([]*Post, error)

	// FindByID fetches one record by its localized record id.
	FindByID(ctx context.Context, recordID string) (*Post, error)
}
