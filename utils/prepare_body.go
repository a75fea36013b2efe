package utils

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"
)

// PrepareBody serializes a structured body for the wire and reports the
// Content-Type that goes with it. An empty bodyType means JSON. Raw
// payloads (multipart uploads, file bytes) bypass this entirely so the
// transport keeps its own boundary header.
func PrepareBody(body map[string]any, bodyType string) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	// Tolerate parameters like "; charset=utf-8" on the declared type.
	mediaType, _, _ := strings.Cut(bodyType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	switch mediaType {
	case "", ContentTypeJSON:
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return buf, ContentTypeJSON, nil
	case ContentTypeForm:
		vals := make(url.Values, len(body))
		for k, v := range body {
			vals.Set(k, fmt.Sprint(v))
		}
		return []byte(vals.Encode()), ContentTypeForm, nil
	default:
		return nil, "", fmt.Errorf("unsupported body type %q", bodyType)
	}
}
