// Package tallyapi is the API client for the Tally business-management
// backend. It owns the authenticated-request layer: bearer attachment,
// proactive and reactive token refresh with single-flight coordination,
// and normalization of every failure into one typed error shape
// (dto.APIError). Endpoint payload schemas are the caller's concern; the
// client exposes generic verbs plus the auth lifecycle operations.
package tallyapi

import (
	"errors"
	"sync/atomic"

	"github.com/fieldlane/tallyapi/client/httpclient"
	"github.com/fieldlane/tallyapi/config"
	"github.com/fieldlane/tallyapi/dto"
	"github.com/fieldlane/tallyapi/tokenstore"
)

// Client is an explicit, constructed value: one per process is typical,
// but nothing here is global. All methods are safe for concurrent use.
type Client struct {
	cfg    *config.ClientConfig
	http   *httpclient.HTTPClient
	closed atomic.Bool
}

// New builds a Client from cfg, filling unset fields from
// config.DefaultClientConfig. A nil Store gets an in-memory token store.
func New(cfg *config.ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("nil client config")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	defaults := config.DefaultClientConfig()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.RefreshMargin <= 0 {
		cfg.RefreshMargin = defaults.RefreshMargin
	}
	if cfg.ExtraHeaders == nil {
		cfg.ExtraHeaders = defaults.ExtraHeaders
	}
	if cfg.Logger == nil {
		cfg.Logger = defaults.Logger
	}
	if cfg.Store == nil {
		cfg.Store = tokenstore.NewMemory()
	}

	hcfg := httpclient.DefaultHTTPClientConfig()
	return NewWithClientConfig(cfg, &hcfg)
}

// NewWithClientConfig is New with full control over the transport-level
// config (middlewares, machine-credential token source, auth scheme).
func NewWithClientConfig(cfg *config.ClientConfig, hcfg *httpclient.HTTPClientConfig) (*Client, error) {
	if cfg == nil || cfg.Store == nil || cfg.Logger == nil {
		return nil, errors.New("incomplete client config")
	}
	return &Client{
		cfg:  cfg,
		http: httpclient.NewHTTPClient(cfg, hcfg),
	}, nil
}

// Close releases pooled connections. The token store is left intact so a
// remembered session survives; call Logout first to drop it.
func (c *Client) Close() error {
	if c.closed.CompareAndSwap(false, true) {
		c.http.CloseIdleConnections()
	}
	return nil
}

func (c *Client) guard() error {
	if c.closed.Load() {
		return dto.ErrClientClosed
	}
	return nil
}
