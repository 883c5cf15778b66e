package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	_, err = fs.Load(ctx, KeyApplications)
	require.ErrorIs(t, err, ErrKeyNotFound)

	payload := []byte(`[{"id":"APP-2026-001"}]`)
	require.NoError(t, fs.Save(ctx, KeyApplications, payload))

	got, err := fs.Load(ctx, KeyApplications)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestFileStoreOverwrite(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, fs.Save(ctx, KeyComplaints, []byte(`[]`)))
	require.NoError(t, fs.Save(ctx, KeyComplaints, []byte(`[{"id":"CMP-2026-001"}]`)))

	got, err := fs.Load(ctx, KeyComplaints)
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"CMP-2026-001"}]`), got)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Save(ctx, KeyNotifications, []byte(`[]`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, KeyNotifications+".json", filepath.Base(entries[0].Name()))
}

func TestFileStoreCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Load(ctx, KeyRegisteredUsers)
	require.ErrorIs(t, err, ErrKeyNotFound)

	payload := []byte(`{"a":1}`)
	require.NoError(t, m.Save(ctx, KeyRegisteredUsers, payload))

	got, err := m.Load(ctx, KeyRegisteredUsers)
	require.NoError(t, err)
	require.Equal(t, payload, got)

	// mutating the returned slice must not affect stored state
	got[0] = 'X'
	again, err := m.Load(ctx, KeyRegisteredUsers)
	require.NoError(t, err)
	require.Equal(t, payload[0], again[0])
}
