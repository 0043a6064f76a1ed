// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package topic

import "context"

// Repository lists topics from the content store.
type Repository interface {
	ListAll(ctx context.Context) ([]Topic, error)
}
