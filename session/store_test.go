package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestStore_RestoreMissingFile(t *testing.T) {
	s := NewStore(storePath(t))
	s.Restore()

	_, ok := s.Get()
	assert.False(t, ok, "missing file must leave the session empty")
}

func TestStore_RestoreMalformedData(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":     "definitely not json",
		"empty file":   "",
		"wrong shape":  `[1,2,3]`,
		"no id":        `{"email":"a@x.com"}`,
		"html garbage": `<html><body>502</body></html>`,
	} {
		t.Run(name, func(t *testing.T) {
			path := storePath(t)
			require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

			s := NewStore(path)
			s.Restore()

			_, ok := s.Get()
			assert.False(t, ok, "malformed data must leave the session empty")
		})
	}
}

func TestStore_SetPersistsAcrossRestore(t *testing.T) {
	path := storePath(t)
	id := Identity{
		ID:          "u1",
		Email:       "alice@example.com",
		FullName:    "Alice Admin",
		IsActive:    true,
		IsSuperuser: true,
	}

	s := NewStore(path)
	require.NoError(t, s.Set(id))

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, id, got)

	// A fresh store over the same file sees the committed identity.
	fresh := NewStore(path)
	fresh.Restore()
	got, ok = fresh.Get()
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestStore_SetOverwritesPriorValue(t *testing.T) {
	s := NewStore(storePath(t))
	require.NoError(t, s.Set(Identity{ID: "u1", Email: "alice@example.com", IsActive: true}))
	require.NoError(t, s.Set(Identity{ID: "u2", Email: "bob@example.com", IsActive: true}))

	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "u2", got.ID)
}

func TestStore_Clear(t *testing.T) {
	path := storePath(t)
	s := NewStore(path)
	require.NoError(t, s.Set(Identity{ID: "u1", IsActive: true}))
	require.NoError(t, s.Clear())

	_, ok := s.Get()
	assert.False(t, ok)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "persisted file must be removed")

	// Clearing an already-empty store is fine.
	require.NoError(t, s.Clear())
}

func TestStore_InactiveIdentityIsStillStored(t *testing.T) {
	// An inactive login is persisted; route authorization is the guard's
	// job, not the store's.
	s := NewStore(storePath(t))
	require.NoError(t, s.Set(Identity{ID: "u1", IsActive: false, IsSuperuser: true}))

	got, ok := s.Get()
	require.True(t, ok)
	assert.False(t, got.IsActive)
}
