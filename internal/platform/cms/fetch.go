// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// Page is one validated list response.
type Page[T Record] struct {
	Contents   []T
	TotalCount int
	Offset     int
	Limit      int
}

// envelope mirrors the list response; pointers let missing fields be told apart from zero.
type envelope struct {
	Contents   *[]json.RawMessage `json:"contents"`
	TotalCount *int               `json:"totalCount"`
	Offset     *int               `json:"offset"`
	Limit      *int               `json:"limit"`
}

// # Operations

/*
List fetches a single page from endpoint.

Parameters:
  - ctx: context.Context
  - client: *Client
  - endpoint: string (e.g. "blogs")
  - query: Query (limit, offset, filters, orders)

Returns:
  - *Page[T]: The validated page
  - error: *Error of KindTransport or KindValidation
*/
func List[T Record](ctx context.Context, client *Client, endpoint string, query Query) (*Page[T], error) {
	body, err := client.get(ctx, endpoint, endpoint, query.values())
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, decodeError(endpoint, "", err)
	}

	root := NewSchema("")
	root.Required("contents", env.Contents != nil)
	root.Required("totalCount", env.TotalCount != nil)
	root.Required("offset", env.Offset != nil)
	root.Required("limit", env.Limit != nil)
	if violations := root.Violations(); len(violations) > 0 {
		return nil, validationError(endpoint, violations[0], errors.New("required field missing"))
	}

	contents := make([]T, 0, len(*env.Contents))
	for i, raw := range *env.Contents {
		item, err := decodeRecord[T](endpoint, NewSchema("contents").Index(i), raw)
		if err != nil {
			return nil, err
		}
		contents = append(contents, item)
	}

	return &Page[T]{
		Contents:   contents,
		TotalCount: *env.TotalCount,
		Offset:     *env.Offset,
		Limit:      *env.Limit,
	}, nil
}

/*
ListAll fetches every item of endpoint, paging with the client's page size.

Pages are requested with limit pageSize, each starting where the items
received so far end, until they reach the reported total. A store that
serves fewer items than asked for is walked at its own page size. A page with no items ends the walk early
so a collection that shrinks mid-walk cannot loop forever. If any page fails
the whole call fails and nothing is returned. The query's Limit and Offset
are ignored.

Returns:
  - []T: Items in response order
  - int: The last reported total
  - error: The first page error
*/
func ListAll[T Record](ctx context.Context, client *Client, endpoint string, query Query) ([]T, int, error) {
	query.Limit = client.pageSize
	query.Offset = 0

	var (
		items []T
		total int
	)

	for {
		page, err := List[T](ctx, client, endpoint, query)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, page.Contents...)
		total = page.TotalCount

		if len(items) >= total || len(page.Contents) == 0 {
			break
		}
		query.Offset += len(page.Contents)
	}

	if items == nil {
		items = []T{}
	}
	return items, total, nil
}

/*
Get fetches one record by id.

Returns:
  - T: The validated record
  - error: ErrNotFound (via errors.Is) when the store answers 404
*/
func Get[T Record](ctx context.Context, client *Client, endpoint, id string) (T, error) {
	var zero T

	label := endpoint + "/" + id
	body, err := client.get(ctx, label, endpoint+"/"+url.PathEscape(id), nil)
	if err != nil {
		return zero, err
	}

	return decodeRecord[T](label, NewSchema(""), json.RawMessage(body))
}

// # Decoding

func decodeRecord[T Record](endpoint string, schema *Schema, raw json.RawMessage) (T, error) {
	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, decodeError(endpoint, schema.Path(), err)
	}

	item.Check(schema)
	if violations := schema.Violations(); len(violations) > 0 {
		return item, validationError(endpoint, violations[0], errors.New("required field missing"))
	}
	return item, nil
}

// decodeError turns a JSON decoding failure into a validation error with a field path.
func decodeError(endpoint, path string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		switch {
		case path == "":
		case field == "":
			field = path
		default:
			field = path + "." + field
		}
		if field == "" {
			field = "$"
		}
		return validationError(endpoint, field, fmt.Errorf("expected %s, got %s", typeErr.Type, typeErr.Value))
	}

	if path == "" {
		path = "$"
	}
	return validationError(endpoint, path, err)
}
