// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (CMS, DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/techblog/internal/platform/cms"
	"github.com/taibuivan/techblog/internal/platform/constants"
	"github.com/taibuivan/techblog/internal/platform/migration"
	"github.com/taibuivan/techblog/internal/platform/postgres"
	"github.com/taibuivan/techblog/internal/platform/redis"
	"github.com/taibuivan/techblog/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the content API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Headless CMS
	CMSServiceDomain     string        `env:"CMS_SERVICE_DOMAIN,required"`
	CMSAPIKey            string        `env:"CMS_API_KEY,required"`
	CMSBaseURL           string        `env:"CMS_BASE_URL"`
	CMSTimeout           time.Duration `env:"CMS_TIMEOUT"            envDefault:"10s"`
	CMSPageSize          int           `env:"CMS_PAGE_SIZE"          envDefault:"100"`
	CMSMemberConcurrency int           `env:"CMS_MEMBER_CONCURRENCY" envDefault:"4"`

	// Relational Database (PostgreSQL), holds the revalidation event log.
	DatabaseURL      string `env:"DATABASE_URL,required"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"5"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// Response cache (Redis)
	RedisURL      string        `env:"REDIS_URL,required"`
	RedisPoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	CacheTTL      time.Duration `env:"CACHE_TTL"       envDefault:"1h"`

	// RevalidateSecret authenticates the CMS webhook.
	RevalidateSecret string `env:"REVALIDATE_SECRET,required"`

	// Cross-Origin Resource Sharing
	SiteURL      string `env:"SITE_URL"`
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(options env.Options) (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.ParseWithOptions(cfg, options); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.CMSPageSize < 1 || cfg.CMSPageSize > cms.DefaultPageSize {
		return nil, fmt.Errorf("config: CMS_PAGE_SIZE must be between 1 and %d", cms.DefaultPageSize)
	}
	if cfg.CMSMemberConcurrency < 1 {
		return nil, fmt.Errorf("config: CMS_MEMBER_CONCURRENCY must be positive")
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the site origin followed by every extra origin.
func (c *Config) AllowedOrigins() []string {
	origins := query.StringSlice(c.ExtraOrigins)
	if c.SiteURL != "" {
		origins = append([]string{c.SiteURL}, origins...)
	}
	return origins
}

// CMS returns the content store client settings.
func (c *Config) CMS() cms.Config {
	return cms.Config{
		ServiceDomain: c.CMSServiceDomain,
		APIKey:        c.CMSAPIKey,
		BaseURL:       c.CMSBaseURL,
		Timeout:       c.CMSTimeout,
		PageSize:      c.CMSPageSize,
	}
}

// Postgres returns the pool options for the event log database.
func (c *Config) Postgres() postgres.Options {
	return postgres.Options{
		DSN:              c.DatabaseURL,
		MaxConns:         c.DatabaseMaxConns,
		StatementTimeout: constants.GlobalRequestTimeout,
		ApplicationName:  constants.AppName,
	}
}

// Redis returns the client options for the response cache.
func (c *Config) Redis() redis.Options {
	return redis.Options{
		URL:        c.RedisURL,
		PoolSize:   c.RedisPoolSize,
		ClientName: constants.AppName,
	}
}

// Migration returns the migration runner options.
func (c *Config) Migration() migration.Options {
	return migration.Options{DSN: c.DatabaseURL, Path: c.MigrationPath}
}
