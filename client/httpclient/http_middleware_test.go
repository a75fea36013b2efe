package httpclient

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/fieldlane/tallyapi/config"
	"github.com/fieldlane/tallyapi/tokenstore"
)

func TestStaticHeaderMiddleware(t *testing.T) {
	mw := StaticHeaderMiddleware(map[string]string{"X-Tenant": "t1"})
	req := &HTTPRequest{}

	require.NoError(t, mw(context.Background(), req))
	assert.Equal(t, "t1", req.Header("X-Tenant"))
}

func TestRequestIDMiddleware_KeepsExisting(t *testing.T) {
	mw := RequestIDMiddleware()

	req := &HTTPRequest{}
	require.NoError(t, mw(context.Background(), req))
	first := req.Header("X-Request-Id")
	assert.NotEmpty(t, first)

	preset := &HTTPRequest{}
	preset.SetHeader("X-Request-Id", "fixed")
	require.NoError(t, mw(context.Background(), preset))
	assert.Equal(t, "fixed", preset.Header("X-Request-Id"))
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	mw := LoggingMiddleware(logger)

	req := &HTTPRequest{Method: http.MethodGet, Path: "/customers", TaskName: "GET /customers"}
	require.NoError(t, mw(context.Background(), req))
	assert.Contains(t, buf.String(), "/customers")
}

// Machine-credential mode: the oauth2 token source feeds the bearer
// token and the refresh-token flow stays out of the picture entirely.
func TestProcessRequest_OAuthSource(t *testing.T) {
	var refreshCalls atomic.Int32
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/reports", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := config.DefaultClientConfig()
	cfg.WithBaseURL(srv.URL).WithStore(tokenstore.NewMemory())
	hcfg := DefaultHTTPClientConfig()
	hcfg.WithOAuthSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "machine-token",
		Expiry:      time.Now().Add(time.Hour),
	}))
	client := NewHTTPClient(&cfg, &hcfg)

	reqCfg := getConfig("/reports")
	_, err := client.ProcessRequest(context.Background(), &reqCfg)

	require.NoError(t, err)
	assert.Equal(t, "Bearer machine-token", gotAuth)
	assert.Equal(t, int32(0), refreshCalls.Load())
}
