package snapshot_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/collector/collectortest"
	"github.com/go-tangra/go-tangra-sysinfo/internal/snapshot"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newCoordinator(q wmiquery.Querier, env collector.Environment, opts ...snapshot.Option) *snapshot.Coordinator {
	opts = append([]snapshot.Option{
		snapshot.WithPlatformCheck(func() bool { return true }),
		snapshot.WithClock(func() time.Time { return fixedTime }),
	}, opts...)
	return snapshot.NewCoordinator(q, env, opts...)
}

func TestAssembleAll(t *testing.T) {
	q := collectortest.Populated()
	c := newCoordinator(q, collectortest.NewEnvironment())

	snap, err := c.Assemble(context.Background(), snapshot.CollectAll())
	require.NoError(t, err)

	assert.Equal(t, fixedTime, snap.CollectedAt)
	assert.Equal(t, "WORKSTATION", snap.Hostname)
	require.NotNil(t, snap.Platform)
	require.NotNil(t, snap.Memory)
	assert.Equal(t, 2, snap.Memory.Banks)
	assert.Equal(t, int64(24576), snap.Memory.TotalMiB)
	assert.Len(t, snap.CPUs, 1)
	assert.Len(t, snap.MemoryBanks, 2)
	assert.Len(t, snap.DiskDrives, 1)
	assert.Len(t, snap.DiskPartitions, 1)
	assert.Len(t, snap.VideoControllers, 1)

	for _, cat := range collector.Categories {
		assert.Equal(t, snapshot.StatusOK, snap.Status[cat], cat)
	}

	// Bank list and summary share one query.
	assert.Equal(t, 1, q.Calls(collector.ClassPhysicalMemory))
	assert.Equal(t, 1, q.Calls(collector.ClassProcessor))
}

func TestDisabledCategoriesAreNeverQueried(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := wmiquery.NewMockQuerier(ctrl)
	q.EXPECT().
		Query(gomock.Any(), collector.ClassProcessor).
		Return([]wmiquery.PropertyBag{collectortest.Processor()}, nil).
		Times(1)

	c := newCoordinator(q, collectortest.NewEnvironment())
	snap, err := c.Assemble(context.Background(), snapshot.Policy{CPU: true})
	require.NoError(t, err)

	assert.Len(t, snap.CPUs, 1)
	assert.Nil(t, snap.Platform)
	assert.Nil(t, snap.Memory)
	assert.NotNil(t, snap.MemoryBanks)
	assert.Empty(t, snap.MemoryBanks)
	assert.Empty(t, snap.DiskDrives)
	assert.Empty(t, snap.DiskPartitions)
	assert.Empty(t, snap.VideoControllers)
	assert.Equal(t, snapshot.StatusOK, snap.Status[collector.CategoryCPU])
	assert.Equal(t, snapshot.StatusDisabled, snap.Status[collector.CategoryDiskDrives])
}

func TestEmptyPolicy(t *testing.T) {
	q := collectortest.Populated()
	c := newCoordinator(q, collectortest.NewEnvironment())

	snap, err := c.Assemble(context.Background(), snapshot.Policy{})
	require.NoError(t, err)

	assert.Zero(t, q.TotalCalls())
	assert.Nil(t, snap.Platform)
	assert.Nil(t, snap.Memory)
	assert.NotNil(t, snap.CPUs)
	assert.NotNil(t, snap.VideoControllers)
	for _, cat := range collector.Categories {
		assert.Equal(t, snapshot.StatusDisabled, snap.Status[cat], cat)
	}
}

func TestCategoryFailureIsIsolated(t *testing.T) {
	q := collectortest.Populated().Fail(collector.ClassDiskDrive, errors.New("RPC server unavailable"))
	c := newCoordinator(q, collectortest.NewEnvironment())

	snap, err := c.Assemble(context.Background(), snapshot.CollectAll())
	require.NoError(t, err)

	assert.NotNil(t, snap.DiskDrives)
	assert.Empty(t, snap.DiskDrives)
	assert.Equal(t, snapshot.StatusFailed, snap.Status[collector.CategoryDiskDrives])

	assert.Len(t, snap.CPUs, 1)
	assert.Len(t, snap.DiskPartitions, 1)
	assert.Len(t, snap.VideoControllers, 1)
	assert.NotNil(t, snap.Platform)
	assert.NotNil(t, snap.Memory)
}

func TestSingletonFailureIsNil(t *testing.T) {
	q := collectortest.Populated().Fail(collector.ClassPhysicalMemory, errors.New("access denied"))
	env := collectortest.NewEnvironment()
	env.Err = errors.New("host info unavailable")
	c := newCoordinator(q, env)

	snap, err := c.Assemble(context.Background(), snapshot.CollectAll())
	require.NoError(t, err)

	assert.Nil(t, snap.Platform)
	assert.Nil(t, snap.Memory)
	assert.Empty(t, snap.MemoryBanks)
	assert.Equal(t, snapshot.StatusFailed, snap.Status[collector.CategoryPlatform])
	assert.Equal(t, snapshot.StatusFailed, snap.Status[collector.CategoryMemorySummary])
	assert.Equal(t, snapshot.StatusFailed, snap.Status[collector.CategoryMemoryBanks])
	assert.Len(t, snap.CPUs, 1)
}

func TestMemorySummaryCountsOnlyDecodedBanks(t *testing.T) {
	q := collectortest.Populated().Set(collector.ClassPhysicalMemory,
		collectortest.MemoryBank("8589934592", 64),
		collectortest.Without(collectortest.MemoryBank("17179869184", 64), "SerialNumber"),
	)
	c := newCoordinator(q, collectortest.NewEnvironment())

	snap, err := c.Assemble(context.Background(), snapshot.CollectAll())
	require.NoError(t, err)

	require.Len(t, snap.MemoryBanks, 1)
	require.NotNil(t, snap.Memory)
	assert.Equal(t, 1, snap.Memory.Banks)
	assert.Equal(t, int64(8589934592), snap.Memory.TotalBytes)
	assert.Equal(t, int64(8192), snap.Memory.TotalMiB)
	assert.Equal(t, 1, q.Calls(collector.ClassPhysicalMemory))
}

func TestMemorySummaryWithoutBankList(t *testing.T) {
	q := collectortest.Populated()
	c := newCoordinator(q, collectortest.NewEnvironment())

	snap, err := c.Assemble(context.Background(), snapshot.Policy{MemorySummary: true})
	require.NoError(t, err)

	require.NotNil(t, snap.Memory)
	assert.Equal(t, 2, snap.Memory.Banks)
	assert.Empty(t, snap.MemoryBanks)
	assert.Equal(t, snapshot.StatusDisabled, snap.Status[collector.CategoryMemoryBanks])
	assert.Equal(t, 1, q.Calls(collector.ClassPhysicalMemory))
	assert.Equal(t, 1, q.TotalCalls())
}

func TestAssembleIsIdempotent(t *testing.T) {
	c := newCoordinator(collectortest.Populated(), collectortest.NewEnvironment())

	first, err := c.Assemble(context.Background(), snapshot.CollectAll())
	require.NoError(t, err)
	second, err := c.Assemble(context.Background(), snapshot.CollectAll())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotSame(t, first, second)
}

func TestUnsupportedPlatform(t *testing.T) {
	q := collectortest.Populated()
	c := snapshot.NewCoordinator(q, collectortest.NewEnvironment(),
		snapshot.WithPlatformCheck(func() bool { return false }))

	snap, err := c.Assemble(context.Background(), snapshot.CollectAll())
	assert.ErrorIs(t, err, snapshot.ErrUnsupportedPlatform)
	assert.Nil(t, snap)
	assert.Zero(t, q.TotalCalls())
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newCoordinator(collectortest.Populated(), collectortest.NewEnvironment())
	snap, err := c.Assemble(ctx, snapshot.CollectAll())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, snap)
}

// blockingQuerier answers only when its context ends.
type blockingQuerier struct{}

func (blockingQuerier) Query(ctx context.Context, _ string) ([]wmiquery.PropertyBag, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTimeout(t *testing.T) {
	c := newCoordinator(blockingQuerier{}, collectortest.NewEnvironment(),
		snapshot.WithTimeout(50*time.Millisecond))

	start := time.Now()
	snap, err := c.Assemble(context.Background(), snapshot.CollectAll())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, snap)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// stuckQuerier ignores its context and answers only when released.
type stuckQuerier struct {
	release chan struct{}
}

func (q stuckQuerier) Query(context.Context, string) ([]wmiquery.PropertyBag, error) {
	<-q.release
	return nil, nil
}

func TestTimeoutAbandonsStuckQuery(t *testing.T) {
	q := stuckQuerier{release: make(chan struct{})}
	t.Cleanup(func() { close(q.release) })
	c := newCoordinator(q, collectortest.NewEnvironment(),
		snapshot.WithTimeout(50*time.Millisecond))

	start := time.Now()
	snap, err := c.Assemble(context.Background(), snapshot.Policy{CPU: true, DiskDrives: true})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, snap)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSnapshotJSONEmptySlots(t *testing.T) {
	c := newCoordinator(collectortest.Populated(), collectortest.NewEnvironment())
	snap, err := c.Assemble(context.Background(), snapshot.Policy{})
	require.NoError(t, err)

	b, err := json.Marshal(snap)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, []any{}, out["cpus"])
	assert.Equal(t, []any{}, out["disk_drives"])
	assert.Nil(t, out["platform"])
}
