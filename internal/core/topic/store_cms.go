// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package topic

import (
	"context"

	"github.com/taibuivan/techblog/internal/platform/cms"
)

const (
	endpoint = "topics"
	orders   = "topic"
)

// CMSRepository reads topics from the headless CMS.
type CMSRepository struct {
	client *cms.Client
}

func NewCMSRepository(client *cms.Client) *CMSRepository {
	return &CMSRepository{client: client}
}

func (repository *CMSRepository) ListAll(ctx context.Context) ([]Topic, error) {
	records, _, err := cms.ListAll[Record](ctx, repository.client, endpoint, cms.Query{Orders: orders})
	if err != nil {
		return nil, err
	}

	topics := make([]Topic, 0, len(records))
	for _, record := range records {
		topics = append(topics, record.ToTopic())
	}
	return topics, nil
}
