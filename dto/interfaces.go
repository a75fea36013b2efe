package dto

// TokenStore is the single owner of session credentials. Implementations
// must be safe for concurrent use; absent values are empty strings.
//
// Only the refresh machinery writes the access token and only session
// teardown clears the store. Request code reads, never writes.
type TokenStore interface {
	Access() string
	SetAccess(token string)
	Refresh() string
	SetRefresh(token string)
	Remember() bool
	SetRemember(v bool)
	// Clear drops everything. Idempotent, safe with no session present.
	Clear()
}

// SessionExpiredHandler is supplied by the host application and invoked
// when a token refresh fails terminally. The client does not know what
// "re-authenticate" means in a given host; it only signals.
type SessionExpiredHandler interface {
	SessionExpired()
}

// SessionExpiredFunc adapts a plain function to SessionExpiredHandler.
type SessionExpiredFunc func()

func (f SessionExpiredFunc) SessionExpired() { f() }
