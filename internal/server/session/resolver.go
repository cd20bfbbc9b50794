// Package session resolves opaque session tokens to identities. A token is
// the numeric user id extracted from a signed cookie by the transport layer;
// tamper-evidence is the transport's job, the resolver only receives the
// bare integer or no value at all.
package session

import "github.com/dmitrijs2005/chronofeed/internal/server/directory"

// UserLookup is the slice of the identity directory the resolver needs.
type UserLookup interface {
	CheckUserID(id uint64) (directory.User, bool)
}

type Resolver struct {
	users UserLookup
}

func NewResolver(users UserLookup) *Resolver {
	return &Resolver{users: users}
}

// Resolve maps a session token to a validated identity. A nil token means
// "not authenticated" and returns nil immediately, without consulting the
// directory. An unknown id also returns nil. Callers treat any nil result
// as the anonymous path, never as an error.
func (r *Resolver) Resolve(token *uint64) *directory.User {
	if token == nil {
		return nil
	}

	u, ok := r.users.CheckUserID(*token)
	if !ok {
		return nil
	}
	return &u
}
