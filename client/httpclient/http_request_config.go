package httpclient

import (
	"net/http"
	"time"
)

// HTTPRequestConfig is immutable input (safe to reuse across calls).
type HTTPRequestConfig struct {
	Method string `json:"method" yaml:"method"`
	// Path is relative to the client's base URL, e.g. "/customers".
	Path string `json:"path" yaml:"path"`
	Body map[string]interface{} `json:"body" yaml:"body"`
	// BodyType application/json, application/x-www-form-urlencoded
	BodyType string            `json:"body_type" yaml:"body_type"`
	Headers  map[string]string `json:"headers" yaml:"headers"`
	// RawBody is sent verbatim when set (multipart/file payloads). No
	// Content-Type is forced for it; RawContentType is used only if the
	// caller supplied one.
	RawBody        []byte `json:"-" yaml:"-"`
	RawContentType string `json:"raw_content_type,omitempty" yaml:"raw_content_type,omitempty"`
	// Timeout overrides the client-wide request timeout when positive.
	Timeout  time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	TaskName string        `json:"task_name,omitempty" yaml:"task_name,omitempty"`
}

func DefaultHTTPRequestConfig() HTTPRequestConfig {
	return HTTPRequestConfig{
		Method:   http.MethodGet,
		BodyType: "application/json",
		Headers:  make(map[string]string),
	}
}

func (c *HTTPRequestConfig) WithMethod(method string) *HTTPRequestConfig {
	c.Method = method
	return c
}
func (c *HTTPRequestConfig) WithPath(path string) *HTTPRequestConfig {
	c.Path = path
	return c
}
func (c *HTTPRequestConfig) WithBody(body map[string]interface{}) *HTTPRequestConfig {
	c.Body = body
	return c
}
func (c *HTTPRequestConfig) WithBodyType(bodyType string) *HTTPRequestConfig {
	c.BodyType = bodyType
	return c
}
func (c *HTTPRequestConfig) WithHeaders(headers map[string]string) *HTTPRequestConfig {
	c.Headers = headers
	return c
}
func (c *HTTPRequestConfig) WithRawBody(body []byte, contentType string) *HTTPRequestConfig {
	c.RawBody = body
	c.RawContentType = contentType
	return c
}
func (c *HTTPRequestConfig) WithTimeout(d time.Duration) *HTTPRequestConfig {
	c.Timeout = d
	return c
}
func (c *HTTPRequestConfig) WithTaskName(name string) *HTTPRequestConfig {
	c.TaskName = name
	return c
}

// NewRequest creates a per-call mutable request object.
// This avoids mutating the config and avoids leaks without cloning the config maps.
func (c *HTTPRequestConfig) NewRequest() *HTTPRequest {
	r := &HTTPRequest{
		Method:   c.Method,
		Path:     c.Path,
		BodyType: c.BodyType,
		Timeout:  c.Timeout,
		TaskName: c.TaskName,
		Headers:  make(map[string]string, len(c.Headers)),
	}
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	if r.TaskName == "" {
		r.TaskName = r.Method + " " + r.Path
	}
	for k, v := range c.Headers {
		r.Headers[k] = v
	}
	if len(c.RawBody) > 0 {
		r.BodyBytes = c.RawBody
		r.ContentType = c.RawContentType
		return r
	}
	if c.Body != nil {
		r.Body = make(map[string]any, len(c.Body))
		for k, v := range c.Body {
			r.Body[k] = v
		}
	}
	return r
}

// HTTPRequest is per-call mutable state.
type HTTPRequest struct {
	Method   string
	Path     string
	Body     map[string]any
	BodyType string
	Headers  map[string]string
	// Finalized wire body (deterministic for the 401 retry)
	BodyBytes   []byte
	ContentType string
	Timeout     time.Duration
	TaskName    string

	// retried marks that the one reactive refresh-and-retry has been
	// spent; a second 401 is terminal.
	retried bool
	// sentToken is the access token attached to the last send, used to
	// anchor the causal "strictly newer token" refresh check.
	sentToken string
}

func (r *HTTPRequest) SetHeader(k, v string) {
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	r.Headers[k] = v
}

func (r *HTTPRequest) Header(k string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers[k]
}
