// Package api declares the admin dashboard's endpoint sets and the
// typed query/mutation surface over them. Every call goes through the
// shared transport stack (rate limit -> retry -> auth gate) and the
// tagged cache, so mounted list views refetch automatically when a
// mutation invalidates their tags.
package api

import (
	"os"

	"homequest-admin/internal/cache"
	"homequest-admin/internal/credentials"
	"homequest-admin/internal/transport"
	"homequest-admin/pkg/config"
	"homequest-admin/pkg/logger"
)

// Client bundles the transport stack, the tagged cache, and the
// credential store. Construct one per process and share it.
type Client struct {
	doer  transport.Doer
	cache *cache.Store
	creds *credentials.Store
	log   *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDoer replaces the transport stack, mainly for tests.
func WithDoer(d transport.Doer) ClientOption {
	return func(c *Client) { c.doer = d }
}

// WithCache replaces the tagged cache, mainly for tests.
func WithCache(s *cache.Store) ClientOption {
	return func(c *Client) { c.cache = s }
}

// New wires a client from configuration: base transport with rate
// limiting, wrapped by the retry policy, wrapped by the auth gate.
func New(cfg *config.Config, creds *credentials.Store, log *logger.Logger, opts ...ClientOption) *Client {
	if log == nil {
		log = logger.New(os.Stdout, logger.ParseLevel(cfg.Log.Level))
	}

	base := transport.New(cfg.API.BaseURL, cfg.Timeout(), creds,
		transport.WithLogger(log),
		transport.WithRateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	)
	retry := transport.NewRetry(base, transport.RetryConfig{
		MaxRetries:     cfg.Retry.MaxRetries,
		InitialBackoff: cfg.InitialBackoff(),
		MaxBackoff:     cfg.MaxBackoff(),
	}, log)
	stack := transport.NewAuthGate(retry, creds, log)

	c := &Client{
		doer:  stack,
		cache: cache.NewStore(cache.WithLogger(log)),
		creds: creds,
		log:   log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Credentials exposes the session store for the UI shell (login state,
// current user).
func (c *Client) Credentials() *credentials.Store {
	return c.creds
}

// Cache exposes the tagged cache, mainly for diagnostics.
func (c *Client) Cache() *cache.Store {
	return c.cache
}
