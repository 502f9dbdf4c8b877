package collector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/collector/collectortest"
)

func TestPlatformCollector(t *testing.T) {
	env := collectortest.NewEnvironment()

	p, err := collector.NewPlatformCollector(env, nopLog).Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, p)

	assert.Equal(t, "WORKSTATION", p.MachineName)
	assert.Equal(t, "Microsoft Windows 11 Pro", p.Platform)
	assert.True(t, p.Is64BitOS)
	assert.Equal(t, 8, p.ProcessorCount)
	assert.Equal(t, []string{`C:\`, `D:\`}, p.LogicalDrives)
	assert.Equal(t, "Windows_NT", p.EnvironmentVariables["OS"])
	assert.Equal(t, "go1.24.0", p.RuntimeVersion)
	require.NotNil(t, p.Firmware)
	assert.Equal(t, "F12", p.Firmware.BIOSVersion)
}

func TestPlatformCollectorWithoutFirmware(t *testing.T) {
	env := collectortest.NewEnvironment()
	env.FirmErr = errors.New("no smbios tables")

	p, err := collector.NewPlatformCollector(env, nopLog).Collect(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p.Firmware)
	assert.Equal(t, "WORKSTATION", p.MachineName)
}

func TestPlatformCollectorFailure(t *testing.T) {
	env := collectortest.NewEnvironment()
	env.Err = errors.New("hostname unavailable")

	p, err := collector.NewPlatformCollector(env, nopLog).Collect(context.Background())
	assert.Nil(t, p)

	var qe *collector.CategoryQueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, collector.CategoryPlatform, qe.Category)
}

func TestPlatformCollectorCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collector.NewPlatformCollector(collectortest.NewEnvironment(), nopLog).Collect(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
