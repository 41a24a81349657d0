package localstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_EmptyWhenMissing(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "nested"))
	require.NoError(t, err)

	ids, err := store.LoadDismissed(context.Background(), "dismissed_reminders_guest")
	require.NoError(t, err)
	assert.Empty(t, ids)

	email, err := store.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestFileStore_DismissedPerKey(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.SaveDismissed(ctx, "dismissed_reminders_a@example.com", []uint64{9, 3}))
	require.NoError(t, store.SaveDismissed(ctx, "dismissed_reminders_b@example.com", []uint64{1}))
	require.NoError(t, store.SaveSession(ctx, "a@example.com"))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)

	ids, err := reopened.LoadDismissed(ctx, "dismissed_reminders_a@example.com")
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 9}, ids)

	ids, err = reopened.LoadDismissed(ctx, "dismissed_reminders_b@example.com")
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, ids)

	email, err := reopened.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o600))

	_, err = store.LoadDismissed(context.Background(), "k")
	require.Error(t, err)
	require.Error(t, store.SaveSession(context.Background(), "x"))
}
