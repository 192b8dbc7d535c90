package session

import (
	"log/slog"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentifyapp/rentify-client/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_EmptySession(t *testing.T) {
	s := openTestStore(t, t.TempDir())

	assert.True(t, s.Ready())
	assert.Nil(t, s.Current())
}

func TestSetUser_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	user := &domain.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

	s, err := Open(dir, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.SetUser(user))
	require.NoError(t, s.Close())

	reopened := openTestStore(t, dir)
	restored := reopened.Current()
	require.NotNil(t, restored)
	assert.Equal(t, *user, *restored)
}

func TestLogout_RemovesPersistedRecord(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, testLogger())
	require.NoError(t, err)
	require.NoError(t, s.SetUser(&domain.User{ID: "u1"}))
	require.NoError(t, s.Logout())
	assert.Nil(t, s.Current())
	require.NoError(t, s.Close())

	reopened := openTestStore(t, dir)
	assert.True(t, reopened.Ready())
	assert.Nil(t, reopened.Current())
}

func TestOpen_CorruptRecordStartsEmpty(t *testing.T) {
	dir := t.TempDir()

	// Plant a record that is not valid JSON.
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	require.NoError(t, db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(userKey), []byte("{not json"))
	}))
	require.NoError(t, db.Close())

	s := openTestStore(t, dir)
	assert.True(t, s.Ready())
	assert.Nil(t, s.Current())

	// The corrupt record is gone, not just ignored.
	require.NoError(t, s.Close())
	db, err = badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	require.NoError(t, err)
	defer db.Close()
	err = db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(userKey))
		return err
	})
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)
}

func TestOpen_InMemory(t *testing.T) {
	s := openTestStore(t, "")

	assert.True(t, s.Ready())
	assert.Nil(t, s.Current())

	require.NoError(t, s.SetUser(&domain.User{ID: "u1"}))
	require.NotNil(t, s.Current())
}

func TestSubscribe_NotifiedOnChange(t *testing.T) {
	s := openTestStore(t, t.TempDir())

	var events []*domain.User
	s.Subscribe(func(u *domain.User) {
		events = append(events, u)
	})

	require.NoError(t, s.SetUser(&domain.User{ID: "u1"}))
	require.NoError(t, s.Logout())

	require.Len(t, events, 2)
	assert.Equal(t, "u1", events[0].ID)
	assert.Nil(t, events[1])
}

func TestCurrent_ReturnsCopy(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	require.NoError(t, s.SetUser(&domain.User{ID: "u1", Name: "Ada"}))

	first := s.Current()
	first.Name = "mutated"

	assert.Equal(t, "Ada", s.Current().Name)
}
