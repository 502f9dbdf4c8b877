package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	first := &Run{
		Hostname:  "WORKSTATION",
		StartedAt: now.Add(-time.Minute),
		Duration:  1500 * time.Millisecond,
		Categories: map[string]CategoryResult{
			"cpu":         {Status: "ok", Records: 1},
			"disk_drives": {Status: "failed"},
		},
	}
	require.NoError(t, j.Record(ctx, first))
	_, err := uuid.Parse(first.ID)
	require.NoError(t, err)

	second := &Run{StartedAt: now, Error: "context deadline exceeded"}
	require.NoError(t, j.Record(ctx, second))

	runs, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, second.ID, runs[0].ID)
	assert.True(t, runs[0].Failed())
	assert.Empty(t, runs[0].Categories)

	got := runs[1]
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "WORKSTATION", got.Hostname)
	assert.True(t, now.Add(-time.Minute).Equal(got.StartedAt))
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.False(t, got.Failed())
	assert.Equal(t, CategoryResult{Status: "ok", Records: 1}, got.Categories["cpu"])
	assert.Equal(t, "failed", got.Categories["disk_drives"].Status)
}

func TestRecentLimit(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(ctx, &Run{StartedAt: time.Now()}))
	}

	runs, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestRecordKeepsExplicitID(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	require.NoError(t, j.Record(ctx, &Run{ID: "run-1", StartedAt: time.Now()}))
	assert.Error(t, j.Record(ctx, &Run{ID: "run-1", StartedAt: time.Now()}))
}

func TestPurge(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, j.Record(ctx, &Run{StartedAt: now.Add(-10 * 24 * time.Hour)}))
	require.NoError(t, j.Record(ctx, &Run{StartedAt: now.Add(-8 * 24 * time.Hour)}))
	require.NoError(t, j.Record(ctx, &Run{StartedAt: now.Add(-time.Hour)}))

	n, err := j.Purge(ctx, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	runs, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
