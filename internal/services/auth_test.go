package services

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/models"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/users"
)

// ---- helpers ----

type authFixture struct {
	store *flakyStore
	users *users.Repository
	svc   AuthService
	logs  *bytes.Buffer
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := newFlakyStore()
	repo := users.NewRepository(store)
	logs := &bytes.Buffer{}
	return &authFixture{
		store: store,
		users: repo,
		svc:   NewAuthService(repo, store, logging.New(logs, "debug")),
		logs:  logs,
	}
}

func (f *authFixture) session(t *testing.T) (map[string]any, bool) {
	t.Helper()
	raw, ok, err := f.store.MemoryStore.Get(context.Background(), SessionKey)
	require.NoError(t, err)
	if !ok {
		return nil, false
	}
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m, true
}

// ---- tests ----

func TestRegister_LogsInAndPersistsSession(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	u, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)

	cur, ok := f.svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u, cur)

	sess, ok := f.session(t)
	require.True(t, ok)
	assert.Equal(t, u.ID, sess["id"])
	assert.Equal(t, "a@x.com", sess["email"])
	assert.NotContains(t, sess, "password")
}

func TestRegister_DuplicateLeavesSessionUntouched(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	first, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, "a@x.com", "pw123456", "bob")
	require.ErrorIs(t, err, common.ErrDuplicateEmail)

	cur, ok := f.svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, first.ID, cur.ID)
	sess, _ := f.session(t)
	assert.Equal(t, first.ID, sess["id"])
}

func TestRegister_StorageFailurePropagates(t *testing.T) {
	f := newAuthFixture(t)
	f.store.fail(false, true, false)

	_, err := f.svc.Register(context.Background(), "a@x.com", "pw123456", "alice")
	require.ErrorIs(t, err, common.ErrStorage)

	_, ok := f.svc.CurrentUser()
	assert.False(t, ok)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success writes the session", func(t *testing.T) {
		f := newAuthFixture(t)
		u, err := f.users.Register(ctx, "a@x.com", "right", "alice")
		require.NoError(t, err)

		got, err := f.svc.Login(ctx, "a@x.com", "right")
		require.NoError(t, err)
		assert.Equal(t, u, got)

		sess, ok := f.session(t)
		require.True(t, ok)
		assert.Equal(t, u.ID, sess["id"])
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.users.Register(ctx, "a@x.com", "right", "alice")
		require.NoError(t, err)

		_, err1 := f.svc.Login(ctx, "a@x.com", "wrong")
		_, err2 := f.svc.Login(ctx, "unknown@x.com", "right")
		assert.Equal(t, common.ErrInvalidCredentials, err1)
		assert.Equal(t, err1, err2)

		_, ok := f.session(t)
		assert.False(t, ok)
		_, ok = f.svc.CurrentUser()
		assert.False(t, ok)
	})

	t.Run("storage fault is reported as invalid credentials and logged", func(t *testing.T) {
		f := newAuthFixture(t)
		f.store.fail(true, false, false)

		_, err := f.svc.Login(ctx, "a@x.com", "right")
		assert.Equal(t, common.ErrInvalidCredentials, err)
		assert.Contains(t, f.logs.String(), "login failed")
	})
}

func TestRestoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("absent", func(t *testing.T) {
		f := newAuthFixture(t)
		_, ok := f.svc.RestoreSession(ctx)
		assert.False(t, ok)
	})

	t.Run("present", func(t *testing.T) {
		f := newAuthFixture(t)
		u, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)

		fresh := NewAuthService(f.users, f.store, logging.NewNop())
		got, ok := fresh.RestoreSession(ctx)
		require.True(t, ok)
		assert.Equal(t, u, got)

		cur, ok := fresh.CurrentUser()
		require.True(t, ok)
		assert.Equal(t, u, cur)
	})

	t.Run("corrupt is no session", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.store.Set(ctx, SessionKey, "{not json"))

		_, ok := f.svc.RestoreSession(ctx)
		assert.False(t, ok)
		_, ok = f.svc.CurrentUser()
		assert.False(t, ok)
	})

	t.Run("unreadable is no session", func(t *testing.T) {
		f := newAuthFixture(t)
		f.store.fail(true, false, false)

		_, ok := f.svc.RestoreSession(ctx)
		assert.False(t, ok)
		assert.Contains(t, f.logs.String(), "restore session failed")
	})

	t.Run("reads a session written by the mobile app", func(t *testing.T) {
		f := newAuthFixture(t)
		require.NoError(t, f.store.Set(ctx, SessionKey, `{"id":"1700000000000","email":"a@x.com","username":"alice","createdAt":"2023-11-14T22:13:20.000Z"}`))

		u, ok := f.svc.RestoreSession(ctx)
		require.True(t, ok)
		assert.Equal(t, "alice", u.Username)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears slot and identity", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)

		f.svc.Logout(ctx)

		_, ok := f.svc.CurrentUser()
		assert.False(t, ok)
		_, ok = f.session(t)
		assert.False(t, ok)
	})

	t.Run("storage failure is logged, identity still cleared", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)
		f.store.fail(false, false, true)

		f.svc.Logout(ctx)

		_, ok := f.svc.CurrentUser()
		assert.False(t, ok)
		assert.Contains(t, f.logs.String(), "logout: session not cleared")
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("not logged in", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.UpdateProfile(ctx, "a@x.com", "", "alice")
		require.ErrorIs(t, err, common.ErrNotLoggedIn)
	})

	t.Run("merges onto the session", func(t *testing.T) {
		f := newAuthFixture(t)
		u, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)

		got, err := f.svc.UpdateProfile(ctx, "new@x.com", "", "alice2")
		require.NoError(t, err)
		assert.Equal(t, models.User{ID: u.ID, Email: "new@x.com", Username: "alice2", CreatedAt: u.CreatedAt}, got)

		cur, _ := f.svc.CurrentUser()
		assert.Equal(t, got, cur)
		sess, _ := f.session(t)
		assert.Equal(t, "new@x.com", sess["email"])
		assert.Equal(t, "alice2", sess["username"])

		// Blank password kept the old one.
		_, err = f.svc.Login(ctx, "new@x.com", "pw123456")
		require.NoError(t, err)
	})

	t.Run("duplicate leaves the session untouched", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.users.Register(ctx, "b@x.com", "pw123456", "bob")
		require.NoError(t, err)
		u, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)

		_, err = f.svc.UpdateProfile(ctx, "b@x.com", "", "alice")
		require.ErrorIs(t, err, common.ErrDuplicateEmail)

		cur, _ := f.svc.CurrentUser()
		assert.Equal(t, u, cur)
		sess, _ := f.session(t)
		assert.Equal(t, "a@x.com", sess["email"])
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
		require.NoError(t, err)
		f.store.fail(false, true, false)

		_, err = f.svc.UpdateProfile(ctx, "new@x.com", "", "alice")
		require.ErrorIs(t, err, common.ErrStorage)
	})
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)

	_, err := f.svc.Profile(ctx)
	require.ErrorIs(t, err, common.ErrNotLoggedIn)

	u, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)

	got, err := f.svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestSession_StaysStaleAfterOutOfBandUserEdit(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	u, err := f.svc.Register(ctx, "a@x.com", "pw123456", "alice")
	require.NoError(t, err)

	all, err := f.users.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].Email = "oob@x.com"
	all[0].Username = "renamed"
	require.NoError(t, f.users.PersistAll(ctx, all))

	cur, ok := f.svc.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, u, cur)

	sess, ok := f.session(t)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", sess["email"])
	assert.Equal(t, "alice", sess["username"])

	// A restart still reads the stale copy.
	fresh := NewAuthService(f.users, f.store, logging.NewNop())
	restored, ok := fresh.RestoreSession(ctx)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", restored.Email)

	// The stored record is what changed.
	stored, err := f.svc.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "oob@x.com", stored.Email)

	// Only a session-writing operation refreshes the copy.
	_, err = f.svc.Login(ctx, "oob@x.com", "pw123456")
	require.NoError(t, err)
	sess, _ = f.session(t)
	assert.Equal(t, "oob@x.com", sess["email"])
}
