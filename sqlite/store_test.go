package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sitegrab/sitegrab"
	"github.com/sitegrab/sitegrab/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestStore_Save_round_trips_records(t *testing.T) {
	t.Parallel()

	s := sqlite.NewStore()
	s.Append(&sitegrab.Result{
		URL:         "https://a.test/",
		Title:       strptr("Home"),
		TextContent: "welcome héllo",
		Links:       3,
		Timestamp:   "2026-08-23 10:00:00",
		ContentHash: "deadbeefdeadbeef",
	})
	s.Append(&sitegrab.Result{
		URL:       "https://a.test/untitled",
		Title:     nil,
		Links:     0,
		Timestamp: "2026-08-23 10:00:01",
	})

	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, s.Save(context.Background(), path))

	got, err := sqlite.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "https://a.test/", got[0].URL)
	require.NotNil(t, got[0].Title)
	assert.Equal(t, "Home", *got[0].Title)
	assert.Equal(t, "welcome héllo", got[0].TextContent)
	assert.Equal(t, 3, got[0].Links)
	assert.Equal(t, "2026-08-23 10:00:00", got[0].Timestamp)
	assert.Equal(t, "deadbeefdeadbeef", got[0].ContentHash)

	assert.Nil(t, got[1].Title, "missing title round-trips as NULL")
}

func TestStore_Save_preserves_append_order(t *testing.T) {
	t.Parallel()

	s := sqlite.NewStore()
	urls := []string{
		"https://a.test/3",
		"https://a.test/1",
		"https://a.test/2",
	}
	for _, u := range urls {
		s.Append(&sitegrab.Result{URL: u, Timestamp: "2026-08-23 10:00:00"})
	}

	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, s.Save(context.Background(), path))

	got, err := sqlite.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, u := range urls {
		assert.Equal(t, u, got[i].URL)
	}
}

func TestStore_repeated_Save_replaces_rather_than_duplicates(t *testing.T) {
	t.Parallel()

	s := sqlite.NewStore()
	s.Append(&sitegrab.Result{URL: "https://a.test/", Timestamp: "2026-08-23 10:00:00"})

	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, s.Save(context.Background(), path))
	require.NoError(t, s.Save(context.Background(), path))

	got, err := sqlite.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_Save_empty_collection(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "results.db")
	require.NoError(t, sqlite.NewStore().Save(context.Background(), path))

	got, err := sqlite.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, got)
}
