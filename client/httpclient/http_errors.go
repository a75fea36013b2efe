package httpclient

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/fieldlane/tallyapi/dto"
	"github.com/fieldlane/tallyapi/utils"
)

// protocolBody is the error envelope the API emits. Message is kept raw
// because the backend sends it in three shapes: a plain string, an array
// of strings, or an array of validation-constraint objects.
type protocolBody struct {
	Message           json.RawMessage `json:"message"`
	Code              string          `json:"code"`
	UpgradeURL        string          `json:"upgradeUrl"`
	AllowedOperations []string        `json:"allowedOperations"`
}

// normalizeTransport converts a failure that produced no response at all
// (DNS, timeout, refused connection) into the one typed error shape.
func normalizeTransport(err error) *dto.APIError {
	return &dto.APIError{
		Message:    err.Error(),
		StatusCode: 0,
		Kind:       dto.ErrKindNetwork,
		Meta:       map[string]any{"temporary": utils.IsTemporaryErr(err)},
	}
}

// normalizeResponse converts a non-2xx response into the one typed error
// shape. Exhaustive by construction: every branch lands on an APIError.
func normalizeResponse(resp dto.Response) *dto.APIError {
	var body protocolBody
	_ = json.Unmarshal(resp.Body, &body)
	message, structured := flattenMessage(body.Message)

	apiErr := &dto.APIError{
		Message:    message,
		StatusCode: resp.StatusCode,
		Code:       body.Code,
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden && body.Code == dto.CodeTrialExpired:
		apiErr.Kind = dto.ErrKindTrialExpired
		apiErr.Meta = map[string]any{
			"upgradeUrl":        body.UpgradeURL,
			"allowedOperations": body.AllowedOperations,
		}
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = dto.ErrKindAuth
	case structured && resp.StatusCode >= 400 && resp.StatusCode < 500:
		apiErr.Kind = dto.ErrKindValidation
	default:
		apiErr.Kind = dto.ErrKindUnknown
	}
	return apiErr
}

// flattenMessage collapses the three message shapes into one string. The
// second return reports whether the shape was the structured array form
// used by field-level validation failures.
func flattenMessage(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", false
	}

	var parts []string
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			parts = append(parts, s)
			continue
		}
		var constraint struct {
			Constraints map[string]string `json:"constraints"`
		}
		if err := json.Unmarshal(item, &constraint); err == nil {
			// Sort for a deterministic combined message.
			keys := make([]string, 0, len(constraint.Constraints))
			for k := range constraint.Constraints {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				parts = append(parts, constraint.Constraints[k])
			}
		}
	}
	return strings.Join(parts, ", "), true
}
