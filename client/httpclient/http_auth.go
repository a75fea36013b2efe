package httpclient

import (
	"fmt"
	"strings"
)

// normalizeAuthType ensures proper "Bearer", "Basic", or custom capitalization.
func normalizeAuthType(t string) string {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "bearer":
		return "Bearer"
	case "basic":
		return "Basic"
	default:
		if t == "" {
			return "Bearer"
		}
		return t
	}
}

// attachAuth injects the current access token as a bearer credential.
// Runs for every class of endpoint: lifecycle calls like logout still
// carry the token when one exists. The refresh token is never attached
// here; it only ever travels in the refresh call's body.
func (c *HTTPClient) attachAuth(req *HTTPRequest) {
	if req.Header("Authorization") != "" {
		// A middleware or caller set explicit credentials; keep them.
		return
	}
	if strings.Contains(trimQuery(req.Path), PathRefresh) {
		// The refresh call authenticates with the refresh token in its
		// body; a stale access token adds nothing to it.
		return
	}
	token := c.store.Access()
	if token == "" {
		return
	}
	req.sentToken = token
	req.SetHeader("Authorization", fmt.Sprintf("%s %s", normalizeAuthType(c.cfg.AuthType), token))
}
