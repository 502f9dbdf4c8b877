package collector_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/collector/collectortest"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

func collectCPU(t *testing.T, rows ...wmiquery.PropertyBag) []collector.CPUInfo {
	t.Helper()
	q := wmiquery.NewStaticQuerier().Set(collector.ClassProcessor, rows...)
	cpus, err := collector.NewCPUCollector(q, nopLog).Collect(context.Background())
	require.NoError(t, err)
	return cpus
}

func TestCPUDecode(t *testing.T) {
	cpus := collectCPU(t, collectortest.Processor())
	require.Len(t, cpus, 1)
	c := cpus[0]

	assert.Equal(t, "Intel(R) Core(TM) i7-9700K CPU @ 3.60GHz", c.Name)
	assert.Equal(t, "To Be Filled By O.E.M.", c.SerialNumber)
	assert.Equal(t, "", c.UniqueID)
	assert.Equal(t, collector.CPUArchitectureX64, c.Architecture)
	assert.Equal(t, "Intel Core i7", c.Family.String())
	assert.Equal(t, collector.CPUStatusEnabled, c.Status)
	assert.Equal(t, collector.CPUVoltage3_3V, c.CurrentVoltage)
	assert.Equal(t, "CENTRAL_PROCESSOR", c.ProcessorType.String())
	assert.Equal(t, 8, c.NumberOfCores)
	assert.Equal(t, 2048, c.L2CacheSize)
	assert.Equal(t, -1, c.L2CacheSpeed)
	assert.Equal(t, 0, c.L3CacheSpeed)
	assert.Equal(t, collector.VirtualizationEnabled, c.VirtualizationFirmwareEnabled)
}

func TestCPUEnums(t *testing.T) {
	tests := []struct {
		name   string
		key    string
		raw    any
		assert func(t *testing.T, c collector.CPUInfo)
	}{
		{"unmapped architecture", "Architecture", int32(4), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUArchitectureNone, c.Architecture)
		}},
		{"arm64", "Architecture", int32(12), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUArchitectureARM64, c.Architecture)
		}},
		{"reserved status 5", "CpuStatus", int32(5), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUStatusReserved, c.Status)
		}},
		{"reserved status 6", "CpuStatus", int32(6), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUStatusReserved, c.Status)
		}},
		{"unmapped status", "CpuStatus", int32(42), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUStatusNone, c.Status)
		}},
		{"unmapped family", "Family", int32(9999), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUFamilyNone, c.Family)
		}},
		{"unmapped voltage", "CurrentVoltage", int32(3), func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUVoltageNone, c.CurrentVoltage)
		}},
		{"absent voltage", "CurrentVoltage", nil, func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.CPUVoltageUnknown, c.CurrentVoltage)
		}},
		{"virtualization disabled", "VirtualizationFirmwareEnabled", false, func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.VirtualizationDisabled, c.VirtualizationFirmwareEnabled)
		}},
		{"virtualization string", "VirtualizationFirmwareEnabled", "True", func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.VirtualizationEnabled, c.VirtualizationFirmwareEnabled)
		}},
		{"virtualization garbage", "VirtualizationFirmwareEnabled", "maybe", func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.VirtualizationUnknown, c.VirtualizationFirmwareEnabled)
		}},
		{"virtualization absent", "VirtualizationFirmwareEnabled", nil, func(t *testing.T, c collector.CPUInfo) {
			assert.Equal(t, collector.VirtualizationUnknown, c.VirtualizationFirmwareEnabled)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpus := collectCPU(t, collectortest.With(collectortest.Processor(), tt.key, tt.raw))
			require.Len(t, cpus, 1)
			tt.assert(t, cpus[0])
		})
	}
}

func TestCPURequiredFields(t *testing.T) {
	for _, key := range []string{"DeviceID", "SerialNumber", "Architecture", "Family", "CpuStatus", "LoadPercentage", "Level"} {
		t.Run(key, func(t *testing.T) {
			assert.Empty(t, collectCPU(t, collectortest.Without(collectortest.Processor(), key)))
		})
	}
}

func TestCPUJSONUsesEnumNames(t *testing.T) {
	cpus := collectCPU(t, collectortest.Processor())
	require.Len(t, cpus, 1)

	b, err := json.Marshal(cpus[0])
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "X64", out["architecture"])
	assert.Equal(t, "ENABLED", out["status"])
	assert.Equal(t, "3.3V", out["current_voltage"])
}
