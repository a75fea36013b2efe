package httpclient

import "strings"

// EndpointClass tags an outgoing request by its target path. The class is
// derived once per request and drives which parts of the refresh
// machinery apply to it.
type EndpointClass int

const (
	// EndpointProtected requests carry a bearer token and participate in
	// proactive and reactive refresh.
	EndpointProtected EndpointClass = iota
	// EndpointAuthLifecycle requests obtain or reset credentials. They
	// are exempt from refresh handling so their auth failures surface
	// as-is instead of looping through the refresh machinery.
	EndpointAuthLifecycle
)

// authLifecyclePaths are matched as path substrings so versioned prefixes
// like /api/v1 classify the same way.
var authLifecyclePaths = []string{
	PathLogin,
	PathRefresh,
	PathLogout,
	PathVerifyOTP,
	PathSendVerification,
	PathVerifyEmail,
	PathForgotPassword,
	PathResetPassword,
}

const (
	PathLogin            = "/auth/login"
	PathRefresh          = "/auth/refresh"
	PathLogout           = "/auth/logout"
	PathVerifyOTP        = "/auth/verify-otp"
	PathSendVerification = "/auth/send-verification"
	PathVerifyEmail      = "/auth/verify-email"
	PathForgotPassword   = "/auth/forgot-password"
	PathResetPassword    = "/auth/reset-password"
	PathWhoAmI           = "/auth/whoami"
)

func classifyEndpoint(path string) EndpointClass {
	p := trimQuery(path)
	for _, pattern := range authLifecyclePaths {
		if strings.Contains(p, pattern) {
			return EndpointAuthLifecycle
		}
	}
	return EndpointProtected
}

// reactiveExempt reports whether a 401 on this path must never trigger a
// refresh-and-retry. Covers every auth-lifecycle path plus whoami: the
// session probe fails fast, though proactive refresh may still run
// before it.
func reactiveExempt(path string) bool {
	if classifyEndpoint(path) == EndpointAuthLifecycle {
		return true
	}
	return strings.Contains(trimQuery(path), PathWhoAmI)
}

func trimQuery(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
