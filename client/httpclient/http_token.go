package httpclient

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpiringSoon reports whether token is within margin of its embedded
// expiry, or already past it. The token is decoded without signature
// verification; the server remains the authority on validity, this only
// decides when to refresh ahead of time.
//
// A token that cannot be decoded, or carries no exp claim, is treated as
// expiring. Failing toward a refresh is cheaper than sending a request
// with a credential that may already be dead.
func ExpiringSoon(token string, margin time.Duration) bool {
	if token == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Until(exp.Time) <= margin
}
