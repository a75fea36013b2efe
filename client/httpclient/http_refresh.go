package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/fieldlane/tallyapi/dto"
)

// refresher owns the single-flight token refresh. However many requests
// notice an expired token concurrently, the refresh endpoint is called
// once and every waiter observes the same outcome. A failed refresh is
// terminal for the session: the store is cleared and the host's
// session-expired handler fires, at most once per session.
type refresher struct {
	group   singleflight.Group
	store   dto.TokenStore
	expired dto.SessionExpiredHandler
	logger  *slog.Logger

	// call issues the actual refresh request; injected so the pipeline
	// routes it through itself (the path classifies as auth-lifecycle,
	// which keeps the call out of its own recovery logic).
	call func(ctx context.Context, refreshToken string) (dto.SessionTokens, error)

	// tornDown guards the one session-expired signal. Re-armed when a
	// new session is established.
	tornDown atomic.Bool
}

const refreshKey = "token-refresh"

// Refresh returns an access token strictly newer than stale, joining an
// in-flight refresh if one exists. stale is the token the caller
// observed failing (or found expiring); if another caller's refresh
// already replaced it, that result is reused without a network call.
// With no refresh token in the store it fails immediately without
// touching the network and without tearing the session down: there is
// nothing to tear.
func (r *refresher) Refresh(ctx context.Context, stale string) (string, error) {
	v, err, _ := r.group.Do(refreshKey, func() (any, error) {
		if current := r.store.Access(); current != "" && current != stale {
			return current, nil
		}

		refreshToken := r.store.Refresh()
		if refreshToken == "" {
			return "", dto.ErrNoRefreshToken
		}

		// The outcome is shared by every waiter, so the call must not
		// die with the one caller whose context happened to start it.
		tokens, err := r.call(context.WithoutCancel(ctx), refreshToken)
		if err != nil {
			r.logger.Warn("token refresh failed, tearing down session", "err", err)
			r.store.Clear()
			r.teardown()
			return "", fmt.Errorf("refresh session: %w", err)
		}

		r.store.SetAccess(tokens.AccessToken)
		if tokens.RefreshToken != "" {
			// Server rotated the refresh token; keep the newer one.
			r.store.SetRefresh(tokens.RefreshToken)
		}
		return tokens.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Arm re-enables the session-expired signal for a newly established
// session.
func (r *refresher) Arm() {
	r.tornDown.Store(false)
}

func (r *refresher) teardown() {
	if !r.tornDown.CompareAndSwap(false, true) {
		return
	}
	if r.expired != nil {
		r.expired.SessionExpired()
	}
}

// callRefresh performs the refresh round-trip through the normal
// pipeline so its failures come back already normalized.
func (c *HTTPClient) callRefresh(ctx context.Context, refreshToken string) (dto.SessionTokens, error) {
	reqCfg := DefaultHTTPRequestConfig()
	reqCfg.WithPath(PathRefresh).
		WithMethod(http.MethodPost).
		WithBody(map[string]any{"refreshToken": refreshToken}).
		WithTaskName("refresh session")

	resp, err := c.ProcessRequest(ctx, &reqCfg)
	if err != nil {
		return dto.SessionTokens{}, err
	}

	var tokens dto.SessionTokens
	if err := json.Unmarshal(dto.UnwrapEnvelope(resp.Body), &tokens); err != nil || tokens.AccessToken == "" {
		// Malformed success is still a failed refresh; keep it in the
		// normalized error shape like every other pipeline failure.
		return dto.SessionTokens{}, &dto.APIError{
			Message:    "malformed refresh response",
			StatusCode: resp.StatusCode,
			Kind:       dto.ErrKindUnknown,
		}
	}
	return tokens, nil
}
