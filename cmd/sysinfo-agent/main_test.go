package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/journal"
	"github.com/go-tangra/go-tangra-sysinfo/internal/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Hostname:         "WORKSTATION",
		Memory:           &collector.MemorySummary{Banks: 2, DataWidth: 64, TotalBytes: 25769803776, TotalMiB: 24576},
		CPUs:             []collector.CPUInfo{},
		MemoryBanks:      []collector.MemoryBankInfo{},
		DiskDrives:       []collector.DiskDriveInfo{},
		DiskPartitions:   []collector.DiskPartitionInfo{},
		VideoControllers: []collector.VideoControllerInfo{},
	}
}

func TestWriteSnapshotJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, testSnapshot(), "json"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "WORKSTATION", out["hostname"])
	assert.Equal(t, []any{}, out["cpus"])
}

func TestWriteSnapshotYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshot(&buf, testSnapshot(), "yaml"))

	var out map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "WORKSTATION", out["hostname"])
	mem, ok := out["memory"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 24576, mem["total_mib"])
}

func TestFailedCategories(t *testing.T) {
	run := journal.Run{Categories: map[string]journal.CategoryResult{
		"cpu":         {Status: "ok", Records: 1},
		"disk_drives": {Status: "failed"},
		"platform":    {Status: "failed"},
	}}
	assert.Equal(t, "platform,disk_drives", failedCategories(run))
	assert.Empty(t, failedCategories(journal.Run{}))
}

func TestCategoryList(t *testing.T) {
	assert.Equal(t, []string{"cpu", "video_controllers"},
		categoryList(snapshot.Policy{CPU: true, VideoControllers: true}))
}
