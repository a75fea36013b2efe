package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fieldlane/tallyapi/config"
	"github.com/fieldlane/tallyapi/dto"
)

// HTTPClient wraps every outgoing API call with credential attachment
// and recovery:
//
//   - protected requests get a proactive refresh when the stored access
//     token is within the refresh margin of expiry
//   - a 401 on a protected request triggers one single-flight refresh
//     and one retry of the identical request
//   - auth-lifecycle requests (login, refresh, password reset, ...) are
//     exempt from both, so their failures surface untouched
//   - every terminal failure reaches the caller as a *dto.APIError
//
// The token store is the only shared mutable state; the pipeline reads
// it but all writes happen in the refresher or in session teardown.
type HTTPClient struct {
	cfg       *HTTPClientConfig
	svcCfg    *config.ClientConfig
	client    *http.Client
	store     dto.TokenStore
	refresher *refresher
	logger    *slog.Logger
}

func NewHTTPClient(svcCfg *config.ClientConfig, cfg *HTTPClientConfig) *HTTPClient {
	c := &HTTPClient{
		cfg:    cfg,
		svcCfg: svcCfg,
		store:  svcCfg.Store,
		logger: svcCfg.Logger,
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        50,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				DisableKeepAlives:   false,
				Proxy:               http.ProxyFromEnvironment,
			},
		},
	}
	c.refresher = &refresher{
		store:   svcCfg.Store,
		expired: svcCfg.OnSessionExpired,
		logger:  svcCfg.Logger,
		call:    c.callRefresh,
	}
	return c
}

// ArmSession re-enables the one-shot session-expired signal after a new
// session is established (login, OTP verification).
func (c *HTTPClient) ArmSession() { c.refresher.Arm() }

// RefreshSession forces a refresh outside the request path, joining any
// refresh already in flight.
func (c *HTTPClient) RefreshSession(ctx context.Context) error {
	_, err := c.refresher.Refresh(ctx, c.store.Access())
	return err
}

// CloseIdleConnections releases pooled transport connections.
func (c *HTTPClient) CloseIdleConnections() { c.client.CloseIdleConnections() }

// ProcessRequest executes one authenticated, middleware-wrapped call.
//
// Recovery is bounded by construction: one proactive refresh before the
// send, one reactive refresh-and-retry after a 401, never more.
func (c *HTTPClient) ProcessRequest(ctx context.Context, inCfg *HTTPRequestConfig) (dto.Response, error) {
	if inCfg == nil {
		return dto.Response{}, dto.ErrNilRequestConfig
	}
	req := inCfg.NewRequest()

	for _, mw := range c.cfg.Middlewares {
		if err := mw(ctx, req); err != nil {
			return dto.Response{}, fmt.Errorf("middleware aborted: %w", err)
		}
	}

	class := classifyEndpoint(req.Path)
	c.ensureToken(ctx, class)
	c.attachAuth(req)

	if err := req.FinalizeBody(); err != nil {
		return dto.Response{}, err
	}

	resp, err := c.send(ctx, req)
	if err != nil {
		return dto.Response{}, normalizeTransport(err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.retried && !reactiveExempt(req.Path) {
		return c.recover401(ctx, req, resp)
	}

	if resp.StatusCode >= 400 {
		return resp, normalizeResponse(resp)
	}
	return resp, nil
}

// recover401 spends the request's single reactive refresh-and-retry. On
// refresh failure the original 401 is surfaced; the refresher has
// already cleared the store and signalled session teardown.
func (c *HTTPClient) recover401(ctx context.Context, req *HTTPRequest, failed dto.Response) (dto.Response, error) {
	req.retried = true

	if _, err := c.refresher.Refresh(ctx, req.sentToken); err != nil {
		return failed, normalizeResponse(failed)
	}

	// Re-issue the identical request with the new token. The finalized
	// body bytes are reused, so the retry is byte-for-byte the same.
	delete(req.Headers, "Authorization")
	c.attachAuth(req)

	resp, err := c.send(ctx, req)
	if err != nil {
		return dto.Response{}, normalizeTransport(err)
	}
	if resp.StatusCode >= 400 {
		// A second 401 lands here too: no further refresh, no retry.
		return resp, normalizeResponse(resp)
	}
	return resp, nil
}

// ensureToken keeps the access token usable ahead of a protected send.
// Refresh failures are deliberately swallowed: the request proceeds with
// whatever token remains (possibly none) and the server has the last
// word.
func (c *HTTPClient) ensureToken(ctx context.Context, class EndpointClass) {
	if class != EndpointProtected {
		return
	}

	if c.cfg.OAuthSource != nil {
		tok, err := c.cfg.OAuthSource.Token()
		if err != nil {
			c.logger.Warn("oauth token source failed", "err", err)
			return
		}
		c.store.SetAccess(tok.AccessToken)
		return
	}

	if access := c.store.Access(); ExpiringSoon(access, c.svcCfg.RefreshMargin) {
		if _, err := c.refresher.Refresh(ctx, access); err != nil {
			c.logger.Debug("proactive refresh skipped", "err", err)
		}
	}
}

// send performs one network round-trip with the request's own timeout.
func (c *HTTPClient) send(ctx context.Context, req *HTTPRequest) (dto.Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.svcCfg.RequestTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	url := strings.TrimRight(c.svcCfg.BaseURL, "/") + req.Path

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bytes.NewReader(req.BodyBytes))
	if err != nil {
		return dto.Response{}, fmt.Errorf("create request: %w", err)
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.ContentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if c.svcCfg.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.svcCfg.UserAgent)
	}
	c.svcCfg.ExtraHeaders.Apply(httpReq.Header)

	// client.Do can return a non-nil response together with an error.
	httpResp, reqErr := c.client.Do(httpReq)
	if httpResp != nil {
		defer func() {
			io.Copy(io.Discard, httpResp.Body) // drain fully for connection reuse
			httpResp.Body.Close()
		}()
	}
	if reqErr != nil {
		return dto.Response{}, fmt.Errorf("perform request: %w", reqErr)
	}

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return dto.Response{}, fmt.Errorf("read body: %w", err)
	}

	c.logger.Debug("http response", "task", req.TaskName, "status", httpResp.StatusCode)

	return dto.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header.Clone(),
		Body:       bodyBytes,
	}, nil
}
