package httpclient

import (
	"context"

	"golang.org/x/oauth2"
)

type Middleware func(ctx context.Context, req *HTTPRequest) error

type HTTPClientConfig struct {
	// OAuthSource switches the client into machine-credential mode: the
	// token source supplies (and renews) the access token and the
	// refresh-token flow is never used. Intended for service-to-service
	// integrations against the same API.
	OAuthSource oauth2.TokenSource
	// AuthType is the Authorization scheme, normalized to "Bearer" when
	// empty.
	AuthType    string
	Middlewares []Middleware
}

func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Middlewares: []Middleware{RequestIDMiddleware()},
	}
}

func (c *HTTPClientConfig) WithOAuthSource(tokenSource oauth2.TokenSource) *HTTPClientConfig {
	c.OAuthSource = tokenSource
	return c
}
func (c *HTTPClientConfig) WithAuthType(t string) *HTTPClientConfig {
	c.AuthType = t
	return c
}
func (c *HTTPClientConfig) WithMiddleware(m ...Middleware) *HTTPClientConfig {
	c.Middlewares = append(c.Middlewares, m...)
	return c
}
