// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// Repository reads books from the content store.
type Repository interface {
	ListAll(ctx context.Context) ([]*Book, error)

	// FindByID fails with a not-found store error when the book does not exist.
	FindByID(ctx context.Context, id string) (*Book, error)
}
