// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package topic

import (
	"context"
	"log/slog"

	"github.com/taibuivan/techblog/internal/platform/cmserr"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListTopics returns every topic ordered by label as stored.
func (service *Service) ListTopics(ctx context.Context) ([]Topic, error) {
	topics, err := service.repo.ListAll(ctx)
	if err != nil {
		return nil, cmserr.Wrap(err, "Topics")
	}
	return topics, nil
}
