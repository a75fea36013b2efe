package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type fileState struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	RememberMe   bool   `json:"remember_me,omitempty"`
}

// File persists the session as a small JSON document, so a desktop or CLI
// host can resume a remembered session across restarts. Writes are
// best-effort; a failed save never blocks the request path.
type File struct {
	path  string
	mu    sync.Mutex
	state fileState
}

// NewFile opens (or lazily creates) the store at path.
func NewFile(path string) (*File, error) {
	f := &File{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return f, nil
	case err != nil:
		return nil, fmt.Errorf("open token store: %w", err)
	}
	if err := json.Unmarshal(raw, &f.state); err != nil {
		// Corrupt store: start over rather than refuse to boot.
		f.state = fileState{}
	}
	return f, nil
}

func (f *File) Access() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.AccessToken
}

func (f *File) SetAccess(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.AccessToken = token
	f.save()
}

func (f *File) Refresh() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.RefreshToken
}

func (f *File) SetRefresh(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.RefreshToken = token
	f.save()
}

func (f *File) Remember() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.RememberMe
}

func (f *File) SetRemember(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state.RememberMe = v
	f.save()
}

func (f *File) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = fileState{}
	f.save()
}

// save writes via a temp file and rename so a crash mid-write cannot
// leave a truncated store. Caller holds f.mu.
func (f *File) save() {
	raw, err := json.Marshal(f.state)
	if err != nil {
		return
	}
	tmp := f.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, f.path)
}
