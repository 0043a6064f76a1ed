// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cms is a read-only client for the headless CMS that stores every post,
topic and book of the site.

The CMS exposes one REST endpoint per content type:

	GET {base}/{endpoint}?limit=&offset=&filters=&orders=   // list envelope
	GET {base}/{endpoint}/{id}                              // single record

Every response is validated against the expected schema before it reaches the
caller. A malformed response fails closed with a [KindValidation] error naming
the offending field, never with a half-filled value.

Usage:

	client, err := cms.NewClient(cms.Config{ServiceDomain: "blog", APIKey: key}, logger)
	posts, total, err := cms.ListAll[blog.Record](ctx, client, "blogs", cms.Query{Orders: "-publishedAt"})
*/
package cms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// # Configuration

const (
	// HeaderAPIKey carries the read key on every request.
	HeaderAPIKey = "X-MICROCMS-API-KEY"

	// DefaultPageSize is the store's per-request item ceiling.
	DefaultPageSize = 100

	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 10 * time.Second

	maxResponseBytes = 16 << 20
)

// Config describes how to reach one CMS service.
type Config struct {
	// ServiceDomain is the tenant name; the base URL becomes https://{domain}.microcms.io/api/v1.
	ServiceDomain string

	APIKey string

	// BaseURL overrides the URL derived from ServiceDomain.
	BaseURL string

	Timeout  time.Duration
	PageSize int
}

// Client issues authenticated requests against the CMS.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

/*
NewClient validates cfg and returns a ready [Client].

Parameters:
  - cfg: Config (service domain or base URL, API key, optional limits)
  - logger: *slog.Logger (request-level debug logging)

Returns:
  - *Client: Configured client
  - error: When neither a domain nor a base URL is set, or the API key is missing
*/
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		if cfg.ServiceDomain == "" {
			return nil, errors.New("cms: service domain or base url is required")
		}
		baseURL = fmt.Sprintf("https://%s.microcms.io/api/v1", cfg.ServiceDomain)
	}

	if cfg.APIKey == "" {
		return nil, errors.New("cms: api key is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// PageSize returns the per-request limit used by [ListAll].
func (c *Client) PageSize() int { return c.pageSize }

// # Query

// Query carries the list parameters understood by the store.
type Query struct {
	// Limit is omitted from the request when zero, leaving the store default.
	Limit  int
	Offset int

	// Filters uses the store's syntax, e.g. "topics[contains]go".
	Filters string

	// Orders is a comma separated field list; a leading "-" sorts descending.
	Orders string
}

func (q Query) values() url.Values {
	values := url.Values{}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	values.Set("offset", strconv.Itoa(q.Offset))
	if q.Filters != "" {
		values.Set("filters", q.Filters)
	}
	if q.Orders != "" {
		values.Set("orders", q.Orders)
	}
	return values
}

// # Transport

// Ping checks that the store answers for endpoint with the configured key.
func (c *Client) Ping(ctx context.Context, endpoint string) error {
	_, err := c.get(ctx, endpoint, endpoint, url.Values{"limit": {"1"}})
	return err
}

// get performs one request and returns the raw body of a 2xx response.
// label names the resource for errors; path is relative to the base URL.
func (c *Client) get(ctx context.Context, label, path string, values url.Values) ([]byte, error) {
	target := c.baseURL + "/" + path
	if len(values) > 0 {
		target += "?" + values.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, transportError(label, 0, fmt.Errorf("build request: %w", err))
	}
	request.Header.Set(HeaderAPIKey, c.apiKey)
	request.Header.Set("Accept", "application/json")

	startTime := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, transportError(label, 0, err)
	}
	defer response.Body.Close()

	c.logger.DebugContext(ctx, "cms_request",
		slog.String("endpoint", label),
		slog.Int("status", response.StatusCode),
		slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	)

	if response.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, &Error{Kind: KindNotFound, Endpoint: label, Status: response.StatusCode}
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, transportError(label, response.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, transportError(label, response.StatusCode, fmt.Errorf("read body: %w", err))
	}

	return body, nil
}
