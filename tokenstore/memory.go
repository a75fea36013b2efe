// Package tokenstore provides the durable keyed stores the client keeps
// its session credentials in. Key names are part of the persisted layout
// and must stay stable across releases.
package tokenstore

import (
	"github.com/joy-dx/lockablemap"
)

const (
	keyAccess   = "access_token"
	keyRefresh  = "refresh_token"
	keyRemember = "remember_me"
)

// Memory is a process-scoped store. Suitable for tests and short-lived
// hosts; tokens do not survive a restart.
type Memory struct {
	data lockablemap.LockableMap[string, string]
}

func NewMemory() *Memory {
	return &Memory{data: *lockablemap.NewLockableMap[string, string]()}
}

func (m *Memory) Access() string          { return m.data.GetAll()[keyAccess] }
func (m *Memory) SetAccess(token string)  { m.data.Set(keyAccess, token) }
func (m *Memory) Refresh() string         { return m.data.GetAll()[keyRefresh] }
func (m *Memory) SetRefresh(token string) { m.data.Set(keyRefresh, token) }
func (m *Memory) Remember() bool          { return m.data.GetAll()[keyRemember] == "true" }

func (m *Memory) SetRemember(v bool) {
	if v {
		m.data.Set(keyRemember, "true")
	} else {
		m.data.Set(keyRemember, "")
	}
}

func (m *Memory) Clear() {
	m.data.Set(keyAccess, "")
	m.data.Set(keyRefresh, "")
	m.data.Set(keyRemember, "")
}
