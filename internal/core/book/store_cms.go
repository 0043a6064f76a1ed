// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"

	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/pkg/slice"
)

const (
	endpoint = "book"
	orders   = "book_title"
)

// CMSRepository reads books from the headless CMS.
type CMSRepository struct {
	client *cms.Client
}

func NewCMSRepository(client *cms.Client) *CMSRepository {
	return &CMSRepository{client: client}
}

func (repository *CMSRepository) ListAll(ctx context.Context) ([]*Book, error) {
	records, _, err := cms.ListAll[Record](ctx, repository.client, endpoint, cms.Query{Orders: orders})
	if err != nil {
		return nil, err
	}
	return slice.Map(records, Record.ToBook), nil
}

func (repository *CMSRepository) FindByID(ctx context.Context, id string) (*Book, error) {
	record, err := cms.Get[Record](ctx, repository.client, endpoint, id)
	if err != nil {
		return nil, err
	}
	return record.ToBook(), nil
}
