// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate

import (
	"context"
	"time"
)

// Event is one received webhook.
type Event struct {
	ID         string    `json:"id"`
	API        string    `json:"api"`
	ContentID  string    `json:"content_id"`
	Type       string    `json:"type"`
	PathCount  int       `json:"path_count"`
	Evicted    int       `json:"evicted"`
	ReceivedAt time.Time `json:"received_at"`
}

// EventRepository persists the webhook log.
type EventRepository interface {
	Record(ctx context.Context, event *Event) error
	ListRecent(ctx context.Context, limit int) ([]*Event, error)
}
