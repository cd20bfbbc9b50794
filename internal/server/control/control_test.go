package control

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/dmitrijs2005/chronofeed/internal/common"
	"github.com/dmitrijs2005/chronofeed/internal/server/directory"
	"github.com/dmitrijs2005/chronofeed/internal/server/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedStore writes records straight through pebble, then reopens the path
// via feed.Open. The control layer has no content write API, so fixtures
// go in at the engine level.
func seedStore(t *testing.T, records map[int64]string) *feed.Store {
	t.Helper()
	dir := t.TempDir()

	db, err := pebble.Open(dir, &pebble.Options{})
	require.NoError(t, err)
	for ts, title := range records {
		value := fmt.Sprintf(`{"timestamp": "%d", "title": "%s"}`, ts, title)
		require.NoError(t, db.Set(feed.EncodeKey(ts), []byte(value), pebble.Sync))
	}
	require.NoError(t, db.Close())

	s, err := feed.Open(dir, feed.Options{})
	require.NoError(t, err)
	return s
}

func loadTestDirectory(t *testing.T) *directory.Directory {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	content := `[{"username": "zbr", "password": "password", "user_id": 2, "can_post": true}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	d, err := directory.Load(path)
	require.NoError(t, err)
	return d
}

func newTestControl(t *testing.T, maxPageSize int) *Control {
	t.Helper()
	store := seedStore(t, map[int64]string{100: "one", 200: "two", 300: "three"})
	c := New(loadTestDirectory(t), store, maxPageSize)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCheckLogin(t *testing.T) {
	c := newTestControl(t, 0)

	u, err := c.CheckLogin("zbr", "password")
	require.NoError(t, err)
	assert.Equal(t, directory.User{Username: "zbr", UserID: 2, CanPost: true}, u)

	_, errWrong := c.CheckLogin("zbr", "wrong")
	_, errUnknown := c.CheckLogin("nobody", "x")
	assert.ErrorIs(t, errWrong, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, common.ErrInvalidCredentials)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestAuthenticate(t *testing.T) {
	c := newTestControl(t, 0)

	assert.Nil(t, c.Authenticate(nil))

	known := uint64(2)
	u := c.Authenticate(&known)
	require.NotNil(t, u)
	assert.Equal(t, "zbr", u.Username)

	// Authenticate and CheckLogin agree on the same identity.
	byLogin, err := c.CheckLogin("zbr", "password")
	require.NoError(t, err)
	assert.Equal(t, byLogin, *u)

	unknown := uint64(99)
	assert.Nil(t, c.Authenticate(&unknown))
}

func TestListLatest_Pages(t *testing.T) {
	c := newTestControl(t, 0)

	page, err := c.ListLatest(0, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "three", page[0]["title"])
	assert.Equal(t, "two", page[1]["title"])

	page, err = c.ListLatest(1, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "two", page[0]["title"])
	assert.Equal(t, "one", page[1]["title"])
}

func TestListLatest_SkipBeyondSize(t *testing.T) {
	c := newTestControl(t, 0)

	page, err := c.ListLatest(50, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestListLatest_ClampsCount(t *testing.T) {
	c := newTestControl(t, 2)

	page, err := c.ListLatest(0, 1000)
	require.NoError(t, err)
	assert.Len(t, page, 2)
	assert.Equal(t, 2, c.MaxPageSize())
}

func TestNew_DefaultMaxPageSize(t *testing.T) {
	c := newTestControl(t, 0)
	assert.Equal(t, DefaultMaxPageSize, c.MaxPageSize())
}

func TestConcurrentReads(t *testing.T) {
	c := newTestControl(t, 0)
	known := uint64(2)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if u := c.Authenticate(&known); u == nil {
					t.Error("known id resolved to nil")
					return
				}
				if _, err := c.CheckLogin("zbr", "password"); err != nil {
					t.Errorf("CheckLogin: %v", err)
					return
				}
				page, err := c.ListLatest(0, 3)
				if err != nil {
					t.Errorf("ListLatest: %v", err)
					return
				}
				if len(page) != 3 {
					t.Errorf("expected 3 records, got %d", len(page))
					return
				}
			}
		}()
	}
	wg.Wait()
}
