package dto

import (
	"encoding/json"
	"net/http"
	"time"
)

type Response struct {
	StatusCode int
	Headers    http.Header
	// Raw response body, prior to any envelope unwrapping
	Body []byte
}

// UnwrapEnvelope returns the inner `data` payload when the body is a
// `{"data": ...}` envelope, otherwise the body unchanged.
func UnwrapEnvelope(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return body
}

// Credentials is the login input. OTP is only set when completing a
// one-time-password challenge.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	OTP      string `json:"otp,omitempty"`
	Remember bool   `json:"rememberMe"`
}

// SessionTokens is the payload the login, OTP-verification and refresh
// endpoints return. RefreshToken may be empty on a plain refresh.
type SessionTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

type ClientState struct {
	BaseURL        string        `json:"base_url" yaml:"base_url"`
	UserAgent      string        `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	RequestTimeout time.Duration `json:"request_timeout,omitempty" yaml:"request_timeout,omitempty"`
	RefreshMargin  time.Duration `json:"refresh_margin,omitempty" yaml:"refresh_margin,omitempty"`
	ExtraHeaders   ExtraHeaders  `json:"extra_headers,omitempty" yaml:"extra_headers,omitempty"`
	Authenticated  bool          `json:"authenticated" yaml:"authenticated"`
	Remembered     bool          `json:"remembered,omitempty" yaml:"remembered,omitempty"`
}
