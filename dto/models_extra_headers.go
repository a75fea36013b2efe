package dto

import (
	"net/http"
	"strings"
)

// ExtraHeaders are static headers applied to every outgoing request,
// parseable from a comma separated key=value string for flag wiring.
type ExtraHeaders map[string]string

// Apply sets each entry on h, skipping keys already present so that
// per-request headers win over client-wide defaults.
func (e ExtraHeaders) Apply(h http.Header) {
	for k, v := range e {
		if h.Get(k) == "" {
			h.Set(k, v)
		}
	}
}

// Parse merges a comma separated key=value string into the map.
func (e ExtraHeaders) Parse(s string) {
	for _, header := range strings.Split(s, ",") {
		kv := strings.SplitN(header, "=", 2)
		if len(kv) != 2 {
			continue
		}
		e[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}
}
