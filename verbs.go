package tallyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fieldlane/tallyapi/client/httpclient"
	"github.com/fieldlane/tallyapi/dto"
)

// Get issues a GET and decodes the (envelope-unwrapped) payload into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.verb(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body map[string]any, out any) error {
	return c.verb(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body map[string]any, out any) error {
	return c.verb(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body map[string]any, out any) error {
	return c.verb(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.verb(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) verb(ctx context.Context, method, path string, body map[string]any, out any) error {
	reqCfg := httpclient.DefaultHTTPRequestConfig()
	reqCfg.WithMethod(method).
		WithPath(path).
		WithTaskName(method + " " + path)
	if body != nil {
		reqCfg.WithBody(body)
	}
	_, err := c.Do(ctx, &reqCfg, out)
	return err
}

// Do executes a fully configured request (per-call timeout overrides,
// raw/multipart bodies, extra headers). When out is non-nil the response
// payload is decoded into it after unwrapping a {data: T} envelope if
// one is present; the raw response is returned either way.
func (c *Client) Do(ctx context.Context, reqCfg *httpclient.HTTPRequestConfig, out any) (dto.Response, error) {
	if err := c.guard(); err != nil {
		return dto.Response{}, err
	}

	resp, err := c.http.ProcessRequest(ctx, reqCfg)
	if err != nil {
		return resp, err
	}

	if out != nil && len(resp.Body) > 0 {
		if err := json.Unmarshal(dto.UnwrapEnvelope(resp.Body), out); err != nil {
			return resp, fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return resp, nil
}
