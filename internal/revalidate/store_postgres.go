// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package revalidate

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/techblog/internal/platform/database/schema"
	"github.com/taibuivan/techblog/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Record(ctx context.Context, event *Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`,
		schema.SystemRevalidationEvent.Table,
		schema.SystemRevalidationEvent.ID,
		schema.SystemRevalidationEvent.API,
		schema.SystemRevalidationEvent.ContentID,
		schema.SystemRevalidationEvent.EventType,
		schema.SystemRevalidationEvent.PathCount,
		schema.SystemRevalidationEvent.EvictedCount,
		schema.SystemRevalidationEvent.ReceivedAt,
	)

	_, err := repository.db.Exec(ctx, query,
		event.ID, event.API, event.ContentID, event.Type,
		event.PathCount, event.Evicted, event.ReceivedAt,
	)
	return dberr.Wrap(err, "Revalidation event")
}

func (repository *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*Event, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1;
	`,
		schema.SystemRevalidationEvent.ID,
		schema.SystemRevalidationEvent.API,
		schema.SystemRevalidationEvent.ContentID,
		schema.SystemRevalidationEvent.EventType,
		schema.SystemRevalidationEvent.PathCount,
		schema.SystemRevalidationEvent.EvictedCount,
		schema.SystemRevalidationEvent.ReceivedAt,
		schema.SystemRevalidationEvent.Table,
		schema.SystemRevalidationEvent.ReceivedAt,
	)

	rows, err := repository.db.Query(ctx, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "Revalidation event")
	}
	defer rows.Close()

	events := make([]*Event, 0, limit)
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.API, &e.ContentID, &e.Type, &e.PathCount, &e.Evicted, &e.ReceivedAt); err != nil {
			return nil, dberr.Wrap(err, "Revalidation event")
		}
		events = append(events, e)
	}

	return events, dberr.Wrap(rows.Err(), "Revalidation event")
}
