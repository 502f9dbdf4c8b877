package collector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/collector/collectortest"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

func TestSummarize(t *testing.T) {
	s := collector.Summarize([]collector.MemoryBankInfo{
		{DataWidth: 64, Capacity: 8589934592},
		{DataWidth: 64, Capacity: 17179869184},
	})
	assert.Equal(t, collector.MemorySummary{
		Banks:      2,
		DataWidth:  64,
		TotalBytes: 25769803776,
		TotalMiB:   24576,
	}, s)
}

func TestSummarizeFirstBankWidth(t *testing.T) {
	s := collector.Summarize([]collector.MemoryBankInfo{
		{DataWidth: 72, Capacity: 1048576},
		{DataWidth: 64, Capacity: 524288},
	})
	assert.Equal(t, 72, s.DataWidth)
	assert.Equal(t, int64(1), s.TotalMiB)
}

func TestSummarizeNoBanks(t *testing.T) {
	assert.Equal(t, collector.MemorySummary{}, collector.Summarize(nil))
}

func TestMemorySummaryCollector(t *testing.T) {
	q := wmiquery.NewStaticQuerier().Set(collector.ClassPhysicalMemory,
		collectortest.MemoryBank("8589934592", 64),
		collectortest.Without(collectortest.MemoryBank("4294967296", 64), "Capacity"),
		// Dropped from the bank list, so not counted in the summary either.
		collectortest.Without(collectortest.MemoryBank("17179869184", 64), "SerialNumber"),
		collectortest.MemoryBank("17179869184", 64),
	)

	banks := collector.NewMemoryBankCollector(q, nopLog)
	s, err := collector.NewMemorySummaryCollector(banks).Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 2, s.Banks)
	assert.Equal(t, int64(25769803776), s.TotalBytes)
	assert.Equal(t, int64(24576), s.TotalMiB)
	assert.Equal(t, 1, q.Calls(collector.ClassPhysicalMemory))
}

func TestMemorySummaryCollectorQueryFailure(t *testing.T) {
	q := wmiquery.NewStaticQuerier().Fail(collector.ClassPhysicalMemory, errors.New("access denied"))

	s, err := collector.NewMemorySummaryCollector(collector.NewMemoryBankCollector(q, nopLog)).
		Collect(context.Background())
	assert.Nil(t, s)

	var qe *collector.CategoryQueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, collector.CategoryMemorySummary, qe.Category)
	assert.Equal(t, collector.ClassPhysicalMemory, qe.Class)
}

func TestMemoryBankCollector(t *testing.T) {
	q := wmiquery.NewStaticQuerier().Set(collector.ClassPhysicalMemory,
		collectortest.MemoryBank("8589934592", 64),
		collectortest.Without(collectortest.MemoryBank("17179869184", 64), "SerialNumber"),
		collectortest.With(collectortest.MemoryBank("17179869184", 64), "FormFactor", int32(99)),
	)

	banks, err := collector.NewMemoryBankCollector(q, nopLog).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 2)

	b := banks[0]
	assert.Equal(t, int64(8589934592), b.Capacity)
	assert.Equal(t, "DIMM", b.FormFactor.String())
	assert.Equal(t, "KHX3200C16D4/8GX  ", b.PartNumber)
	assert.Equal(t, "", b.SKU)
	assert.Equal(t, -1, b.PositionInRow)

	assert.Equal(t, collector.MemoryFormFactorUnknown, banks[1].FormFactor)
}

func TestMemoryCapacityOverflowDropsBank(t *testing.T) {
	q := wmiquery.NewStaticQuerier().Set(collector.ClassPhysicalMemory,
		collectortest.MemoryBank("18446744073709551615", 64),
	)

	banks, err := collector.NewMemoryBankCollector(q, nopLog).Collect(context.Background())
	require.NoError(t, err)
	assert.Empty(t, banks)
}
