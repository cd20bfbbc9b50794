package directory

import (
	"testing"

	"github.com/dmitrijs2005/chronofeed/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := build([]meta{
		{Username: "zbr", Password: "password", UserID: 2, CanPost: true},
		{Username: "reader", Password: "qwerty", UserID: 7, CanPost: false},
	})
	require.NoError(t, err)
	return d
}

func TestCheckPassword_Success(t *testing.T) {
	d := newTestDirectory(t)

	u, err := d.CheckPassword("zbr", "password")
	require.NoError(t, err)
	assert.Equal(t, User{Username: "zbr", UserID: 2, CanPost: true}, u)
}

func TestCheckPassword_FailuresAreIndistinguishable(t *testing.T) {
	d := newTestDirectory(t)

	_, errWrongPassword := d.CheckPassword("zbr", "wrong")
	_, errUnknownUser := d.CheckPassword("nobody", "x")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownUser)

	// Both failure modes must surface the exact same error value, so a
	// client cannot probe which usernames exist.
	assert.ErrorIs(t, errWrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, common.ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestCheckPassword_DoesNotLeakCredentials(t *testing.T) {
	d := newTestDirectory(t)

	u, err := d.CheckPassword("reader", "qwerty")
	require.NoError(t, err)

	// User carries no password field at all; this pins the shape.
	assert.Equal(t, User{Username: "reader", UserID: 7, CanPost: false}, u)
}

func TestCheckUserID(t *testing.T) {
	d := newTestDirectory(t)

	u, ok := d.CheckUserID(2)
	require.True(t, ok)
	assert.Equal(t, "zbr", u.Username)
	assert.True(t, u.CanPost)

	_, ok = d.CheckUserID(404)
	assert.False(t, ok)
}

func TestCheckUserID_MatchesCheckPassword(t *testing.T) {
	d := newTestDirectory(t)

	byPassword, err := d.CheckPassword("zbr", "password")
	require.NoError(t, err)

	byID, ok := d.CheckUserID(byPassword.UserID)
	require.True(t, ok)
	assert.Equal(t, byPassword, byID)
}

func TestLen(t *testing.T) {
	d := newTestDirectory(t)
	assert.Equal(t, 2, d.Len())
}
