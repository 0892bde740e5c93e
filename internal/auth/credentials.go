package auth

import (
	"strings"
	"sync"
)

// Provider supplies the bearer credential for upstream calls. The
// storefront never acquires or refreshes tokens itself; it only carries
// the credential an external auth collaborator issued. Lifecycle: seeded
// when a workflow starts, cleared on teardown.
type Provider interface {
	Get() (string, bool)
	Set(token string)
	Clear()
}

// MemoryProvider is an in-process Provider. A payment attempt holds one,
// seeded with the initiating request's bearer token, so the polling task
// can keep authenticating status calls after the request has returned.
type MemoryProvider struct {
	mu    sync.RWMutex
	token string
	set   bool
}

func NewMemoryProvider(token string) *MemoryProvider {
	return &MemoryProvider{token: token, set: token != ""}
}

func (p *MemoryProvider) Get() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.token, p.set
}

func (p *MemoryProvider) Set(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = token
	p.set = token != ""
}

func (p *MemoryProvider) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.token = ""
	p.set = false
}

// BearerFromHeader extracts the token from an Authorization header value.
func BearerFromHeader(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
