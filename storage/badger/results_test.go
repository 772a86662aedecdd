package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/fastmatcher/core"
	"github.com/poiesic/fastmatcher/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecords() []*core.MatchRecord {
	return []*core.MatchRecord{
		{Source: "a.log", LineNo: 2, Keywords: []string{"ERROR"}, Lines: []string{"a", "ERROR b", "c"}},
		{Source: "b.log", LineNo: 5, Keywords: []string{"WARN"}, Lines: []string{"WARN x"}},
	}
}

func TestNewResultRepository(t *testing.T) {
	t.Run("nil backend", func(t *testing.T) {
		_, err := NewResultRepository(nil)
		assert.Equal(t, ErrNilBackend, err)
	})

	t.Run("valid backend", func(t *testing.T) {
		repo, backend, err := NewMemoryRepository()
		require.NoError(t, err)
		defer backend.Close()
		defer repo.Close()
		assert.NotNil(t, repo)
	})
}

func TestPutGetResults(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	records := testRecords()

	require.NoError(t, repo.PutResults(ctx, "search-1", records, 0))

	got, err := repo.GetResults(ctx, "search-1")
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestGetResultsUnknownID(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	_, err = repo.GetResults(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPutResultsRejectsInvalidRecord(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	bad := []*core.MatchRecord{{Source: "x", LineNo: 0}}
	err = repo.PutResults(context.Background(), "search-1", bad, 0)
	assert.ErrorIs(t, err, core.ErrInvalidMatchRecord)
}

func TestDeleteResults(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.PutResults(ctx, "search-1", testRecords(), 0))
	require.NoError(t, repo.DeleteResults(ctx, "search-1"))

	_, err = repo.GetResults(ctx, "search-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, repo.DeleteResults(ctx, "search-1"))
}

func TestResultsExpire(t *testing.T) {
	if testing.Short() {
		t.Skip("expiry test sleeps past the TTL")
	}

	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	// Badger TTLs have one-second granularity.
	require.NoError(t, repo.PutResults(ctx, "search-1", testRecords(), time.Second))

	require.Eventually(t, func() bool {
		_, err := repo.GetResults(ctx, "search-1")
		return err != nil
	}, 5*time.Second, 200*time.Millisecond)

	_, err = repo.GetResults(ctx, "search-1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOverwriteResults(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()
	defer repo.Close()

	ctx := context.Background()
	require.NoError(t, repo.PutResults(ctx, "search-1", testRecords(), 0))

	replacement := []*core.MatchRecord{
		{Source: "c.log", LineNo: 1, Keywords: []string{"x"}, Lines: []string{"x"}},
	}
	require.NoError(t, repo.PutResults(ctx, "search-1", replacement, 0))

	got, err := repo.GetResults(ctx, "search-1")
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}
