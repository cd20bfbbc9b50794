// Package control composes the identity directory, the session resolver and
// the content store into the single shared object the request-handling
// layer talks to. One Control instance exists per process; it is
// constructed at bootstrap and passed explicitly through the call chain.
package control

import (
	"sync"

	"github.com/dmitrijs2005/chronofeed/internal/server/directory"
	"github.com/dmitrijs2005/chronofeed/internal/server/feed"
	"github.com/dmitrijs2005/chronofeed/internal/server/session"
)

// DefaultMaxPageSize bounds a single ListLatest page when the constructor
// is given no explicit limit, so one call cannot pin the lock while
// decoding an unbounded page.
const DefaultMaxPageSize = 100

// Control guards the composed state with a reader/writer lock. All current
// operations are reads and take the shared lock; the store's call-local
// iterators make that safe. Lock modes are chosen up front, never upgraded
// within a held scope.
type Control struct {
	mu          sync.RWMutex
	dir         *directory.Directory
	resolver    *session.Resolver
	store       *feed.Store
	maxPageSize int
}

// New builds a Control over an already-loaded directory and an open store.
// maxPageSize clamps ListLatest's count; zero or negative selects
// DefaultMaxPageSize.
func New(dir *directory.Directory, store *feed.Store, maxPageSize int) *Control {
	if maxPageSize <= 0 {
		maxPageSize = DefaultMaxPageSize
	}
	return &Control{
		dir:         dir,
		resolver:    session.NewResolver(dir),
		store:       store,
		maxPageSize: maxPageSize,
	}
}

// Authenticate resolves a session token to an identity. A nil token or an
// unknown id returns nil, which callers treat as the anonymous path.
func (c *Control) Authenticate(token *uint64) *directory.User {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.resolver.Resolve(token)
}

// CheckLogin verifies submitted credentials. Failures are
// common.ErrInvalidCredentials regardless of whether the username exists.
func (c *Control) CheckLogin(username, password string) (directory.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.dir.CheckPassword(username, password)
}

// ListLatest returns a page of the newest records, count clamped to the
// configured maximum. Errors are the store's own: *feed.DecodeError or
// *feed.StoreError, both recoverable by the caller.
func (c *Control) ListLatest(skip, count int) ([]map[string]string, error) {
	if count > c.maxPageSize {
		count = c.maxPageSize
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.store.ReadLatest(skip, count)
}

// MaxPageSize reports the page clamp in effect.
func (c *Control) MaxPageSize() int {
	return c.maxPageSize
}

// Close releases the content store. Called once at process shutdown, after
// the request-handling layer has stopped.
func (c *Control) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.store.Close()
}
