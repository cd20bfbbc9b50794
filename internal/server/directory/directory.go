// Package directory holds the in-memory identity directory: the mapping of
// usernames and numeric ids to credential records. The directory is built
// once at startup and is read-only afterwards.
package directory

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/chronofeed/internal/common"
)

// User is the credential-free view of an identity. It is the only shape the
// directory ever hands out to callers.
type User struct {
	Username string
	UserID   uint64
	CanPost  bool
}

// meta is the server-side credential record. The password never leaves this
// package; callers only see derived User values.
type meta struct {
	Username string `json:"username"`
	Password string `json:"password"`
	UserID   uint64 `json:"user_id"`
	CanPost  bool   `json:"can_post"`
}

func (m *meta) user() User {
	return User{
		Username: m.Username,
		UserID:   m.UserID,
		CanPost:  m.CanPost,
	}
}

// Directory maps usernames and user ids to credential records. Both mappings
// are bijections: no two records share a username or an id.
type Directory struct {
	usernameToID map[string]uint64
	byID         map[uint64]meta
}

// CheckPassword verifies a username/password pair and returns the matching
// User. An unknown username and a wrong password both return
// common.ErrInvalidCredentials: the caller must not be able to tell the two
// cases apart, or the endpoint becomes a username oracle.
func (d *Directory) CheckPassword(username, password string) (User, error) {
	id, ok := d.usernameToID[username]
	if !ok {
		return User{}, common.ErrInvalidCredentials
	}

	m, ok := d.byID[id]
	if !ok {
		return User{}, common.ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(m.Password), []byte(password)) != 1 {
		return User{}, common.ErrInvalidCredentials
	}

	return m.user(), nil
}

// CheckUserID returns the User for a known id. The second result is false
// for unknown ids; there is no further failure distinction.
func (d *Directory) CheckUserID(id uint64) (User, bool) {
	m, ok := d.byID[id]
	if !ok {
		return User{}, false
	}
	return m.user(), true
}

// Len returns the number of identities in the directory.
func (d *Directory) Len() int {
	return len(d.byID)
}
