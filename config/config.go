package config

import (
	"io"
	"log/slog"
	"time"

	"github.com/fieldlane/tallyapi/dto"
)

const (
	// DefaultRequestTimeout bounds each individual network call. Large
	// payload operations override it per request.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultRefreshMargin is how close to expiry an access token may get
	// before a proactive refresh is triggered.
	DefaultRefreshMargin = 2 * time.Minute
)

// ClientConfig carries everything the host application injects: where the
// API lives, how requests are decorated, where tokens persist and what to
// do when the session dies.
type ClientConfig struct {
	BaseURL          string
	UserAgent        string
	ExtraHeaders     dto.ExtraHeaders
	RequestTimeout   time.Duration
	RefreshMargin    time.Duration
	Store            dto.TokenStore
	OnSessionExpired dto.SessionExpiredHandler
	Logger           *slog.Logger
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		RequestTimeout: DefaultRequestTimeout,
		RefreshMargin:  DefaultRefreshMargin,
		ExtraHeaders:   make(dto.ExtraHeaders),
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (c *ClientConfig) WithBaseURL(url string) *ClientConfig {
	c.BaseURL = url
	return c
}
func (c *ClientConfig) WithUserAgent(ua string) *ClientConfig {
	c.UserAgent = ua
	return c
}
func (c *ClientConfig) WithExtraHeaders(headers dto.ExtraHeaders) *ClientConfig {
	c.ExtraHeaders = headers
	return c
}
func (c *ClientConfig) WithRequestTimeout(d time.Duration) *ClientConfig {
	c.RequestTimeout = d
	return c
}
func (c *ClientConfig) WithRefreshMargin(d time.Duration) *ClientConfig {
	c.RefreshMargin = d
	return c
}
func (c *ClientConfig) WithStore(store dto.TokenStore) *ClientConfig {
	c.Store = store
	return c
}
func (c *ClientConfig) WithSessionExpiredHandler(h dto.SessionExpiredHandler) *ClientConfig {
	c.OnSessionExpired = h
	return c
}
func (c *ClientConfig) WithLogger(logger *slog.Logger) *ClientConfig {
	c.Logger = logger
	return c
}
