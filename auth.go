package tallyapi

import (
	"context"

	"github.com/fieldlane/tallyapi/client/httpclient"
	"github.com/fieldlane/tallyapi/dto"
)

// Login authenticates with the given credentials and installs the
// returned session in the token store. Login routes through the same
// pipeline as every other call, so its failures arrive normalized, but
// its path is classified auth-lifecycle: a 401 here means bad
// credentials, not a refreshable session.
func (c *Client) Login(ctx context.Context, creds dto.Credentials) error {
	var tokens dto.SessionTokens
	err := c.Post(ctx, httpclient.PathLogin, map[string]any{
		"email":      creds.Email,
		"password":   creds.Password,
		"rememberMe": creds.Remember,
	}, &tokens)
	if err != nil {
		return err
	}
	c.installSession(tokens, creds.Remember)
	return nil
}

// VerifyOTP completes a one-time-password challenge and installs the
// resulting session.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) error {
	var tokens dto.SessionTokens
	err := c.Post(ctx, httpclient.PathVerifyOTP, map[string]any{
		"email": email,
		"otp":   code,
	}, &tokens)
	if err != nil {
		return err
	}
	c.installSession(tokens, c.cfg.Store.Remember())
	return nil
}

// Logout tells the backend to invalidate the session, then clears the
// local store regardless of how that call went: local teardown must not
// depend on the network.
func (c *Client) Logout(ctx context.Context) error {
	err := c.Post(ctx, httpclient.PathLogout, nil, nil)
	c.cfg.Store.Clear()
	return err
}

// WhoAmI fetches the current principal into out. A stale token may be
// refreshed proactively before the call, but a 401 response is
// terminal: the session probe reports the session's state, it does not
// repair it.
func (c *Client) WhoAmI(ctx context.Context, out any) error {
	return c.Get(ctx, httpclient.PathWhoAmI, out)
}

// RefreshSession forces a token refresh, joining one already in flight.
func (c *Client) RefreshSession(ctx context.Context) error {
	if err := c.guard(); err != nil {
		return err
	}
	return c.http.RefreshSession(ctx)
}

// ForgotPassword requests a password-reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.Post(ctx, httpclient.PathForgotPassword, map[string]any{"email": email}, nil)
}

// ResetPassword completes a password reset with the emailed token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.Post(ctx, httpclient.PathResetPassword, map[string]any{
		"token":    token,
		"password": newPassword,
	}, nil)
}

// SendVerification asks the backend to (re)send the account
// verification email.
func (c *Client) SendVerification(ctx context.Context, email string) error {
	return c.Post(ctx, httpclient.PathSendVerification, map[string]any{"email": email}, nil)
}

// VerifyEmail confirms an account with the emailed token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.Post(ctx, httpclient.PathVerifyEmail, map[string]any{"token": token}, nil)
}

// IsAuthenticated reports whether a session is present locally. It says
// nothing about whether the server still honors it.
func (c *Client) IsAuthenticated() bool {
	return c.cfg.Store.Access() != ""
}

func (c *Client) installSession(tokens dto.SessionTokens, remember bool) {
	c.cfg.Store.SetAccess(tokens.AccessToken)
	if tokens.RefreshToken != "" {
		c.cfg.Store.SetRefresh(tokens.RefreshToken)
	}
	c.cfg.Store.SetRemember(remember)
	// A fresh session re-arms the one-shot session-expired signal.
	c.http.ArmSession()
}
