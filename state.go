package tallyapi

import "github.com/fieldlane/tallyapi/dto"

// State snapshots the client's effective configuration and session
// standing for diagnostics surfaces. Token values themselves are never
// included.
func (c *Client) State() *dto.ClientState {
	return &dto.ClientState{
		BaseURL:        c.cfg.BaseURL,
		UserAgent:      c.cfg.UserAgent,
		RequestTimeout: c.cfg.RequestTimeout,
		RefreshMargin:  c.cfg.RefreshMargin,
		ExtraHeaders:   c.cfg.ExtraHeaders,
		Authenticated:  c.IsAuthenticated(),
		Remembered:     c.cfg.Store.Remember(),
	}
}
