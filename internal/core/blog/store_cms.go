// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"context"

	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/pkg/slice"
)

const (
	endpoint      = "blogs"
	defaultOrders = "-publishedAt"
)

// CMSRepository reads posts from the headless CMS.
type CMSRepository struct {
	client *cms.Client
}

func NewCMSRepository(client *cms.Client) *CMSRepository {
	return &CMSRepository{client: client}
}

func (repository *CMSRepository) List(ctx context.Context, opts ListOptions) ([]*Post, int, error) {
	query := toQuery(opts)
	if query.Limit <= 0 {
		query.Limit = DefaultListLimit
	}

	page, err := cms.List[Record](ctx, repository.client, endpoint, query)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(page.Contents, Record.ToPost), page.TotalCount, nil
}

func (repository *CMSRepository) ListAll(ctx context.Context, opts ListOptions) ([]*Post, error) {
	records, _, err := cms.ListAll[Record](ctx, repository.client, endpoint, toQuery(opts))
	if err != nil {
		return nil, err
	}
	return slice.Map(records, Record.ToPost), nil
}

func (repository *CMSRepository) FindByID(ctx context.Context, recordID string) (*Post, error) {
	record, err := cms.Get[Record](ctx, repository.client, endpoint, recordID)
	if err != nil {
		return nil, err
	}
	return record.ToPost(), nil
}

func toQuery(opts ListOptions) cms.Query {
	orders := opts.Orders
	if orders == "" {
		orders = defaultOrders
	}
	return cms.Query{
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		Filters: opts.Filters,
		Orders:  orders,
	}
}
