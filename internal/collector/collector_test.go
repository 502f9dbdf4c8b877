package collector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/collector/collectortest"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

var nopLog = zerolog.Nop()

func TestMalformedRowsAreSkippedInOrder(t *testing.T) {
	first := collectortest.With(collectortest.DiskDrive(), "DeviceID", "disk-1")
	missing := collectortest.Without(collectortest.DiskDrive(), "Model")
	second := collectortest.With(collectortest.DiskDrive(), "DeviceID", "disk-2")
	badNumber := collectortest.With(collectortest.DiskDrive(), "Partitions", "three")
	third := collectortest.With(collectortest.DiskDrive(), "DeviceID", "disk-3")

	q := wmiquery.NewStaticQuerier().Set(collector.ClassDiskDrive, first, missing, second, badNumber, third)

	drives, err := collector.NewDiskDriveCollector(q, nopLog).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, drives, 3)
	assert.Equal(t, "disk-1", drives[0].DeviceID)
	assert.Equal(t, "disk-2", drives[1].DeviceID)
	assert.Equal(t, "disk-3", drives[2].DeviceID)
	assert.Equal(t, 1, q.Calls(collector.ClassDiskDrive))
}

func TestAllRowsMalformedGivesEmptySlice(t *testing.T) {
	q := wmiquery.NewStaticQuerier().Set(collector.ClassProcessor,
		collectortest.Without(collectortest.Processor(), "DeviceID"),
		collectortest.With(collectortest.Processor(), "AddressWidth", "sixty-four"),
	)

	cpus, err := collector.NewCPUCollector(q, nopLog).Collect(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cpus)
	assert.Empty(t, cpus)
}

func TestQueryFailure(t *testing.T) {
	q := wmiquery.NewStaticQuerier().Fail(collector.ClassVideoController, errors.New("access denied"))

	_, err := collector.NewVideoControllerCollector(q, nopLog).Collect(context.Background())
	require.Error(t, err)

	var qe *collector.CategoryQueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, collector.CategoryVideoControllers, qe.Category)
	assert.Equal(t, collector.ClassVideoController, qe.Class)
	assert.ErrorIs(t, err, wmiquery.ErrQuery)
}

func TestCancelledQueryReturnsContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := collectortest.Populated()
	_, err := collector.NewDiskPartitionCollector(q, nopLog).Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	var qe *collector.CategoryQueryError
	assert.False(t, errors.As(err, &qe))
}

func TestCategoryQueryErrorMessage(t *testing.T) {
	err := &collector.CategoryQueryError{Category: collector.CategoryCPU, Class: "Win32_Processor", Err: errors.New("boom")}
	assert.Equal(t, "collect cpu (Win32_Processor): boom", err.Error())

	err = &collector.CategoryQueryError{Category: collector.CategoryPlatform, Err: errors.New("boom")}
	assert.Equal(t, "collect platform: boom", err.Error())
}
