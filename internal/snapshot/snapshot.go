// Package snapshot assembles the per-category collectors into one Snapshot.
// Categories run concurrently and fail independently: a category that
// cannot be collected leaves an empty slot and the rest of the snapshot is
// still returned.
package snapshot

import (
	"errors"
	"time"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
)

// ErrUnsupportedPlatform is returned before any query when the host cannot
// serve WMI.
var ErrUnsupportedPlatform = errors.New("hardware inventory requires windows")

// Status is the outcome of one category in one Assemble call.
type Status string

const (
	StatusOK       Status = "ok"
	StatusFailed   Status = "failed"
	StatusDisabled Status = "disabled"
)

// Snapshot is the merged result of one Assemble call. List slots are never
// nil; Platform and Memory are nil when disabled or failed.
type Snapshot struct {
	CollectedAt      time.Time                       `json:"collected_at" yaml:"collected_at"`
	Hostname         string                          `json:"hostname" yaml:"hostname"`
	Platform         *collector.PlatformInfo         `json:"platform" yaml:"platform"`
	Memory           *collector.MemorySummary        `json:"memory" yaml:"memory"`
	CPUs             []collector.CPUInfo             `json:"cpus" yaml:"cpus"`
	MemoryBanks      []collector.MemoryBankInfo      `json:"memory_banks" yaml:"memory_banks"`
	DiskDrives       []collector.DiskDriveInfo       `json:"disk_drives" yaml:"disk_drives"`
	DiskPartitions   []collector.DiskPartitionInfo   `json:"disk_partitions" yaml:"disk_partitions"`
	VideoControllers []collector.VideoControllerInfo `json:"video_controllers" yaml:"video_controllers"`
	Status           map[collector.Category]Status   `json:"status" yaml:"status"`
}

// Records counts the records held for c.
func (s *Snapshot) Records(c collector.Category) int {
	switch c {
	case collector.CategoryCPU:
		return len(s.CPUs)
	case collector.CategoryMemoryBanks:
		return len(s.MemoryBanks)
	case collector.CategoryMemorySummary:
		return boolToInt(s.Memory != nil)
	case collector.CategoryPlatform:
		return boolToInt(s.Platform != nil)
	case collector.CategoryDiskDrives:
		return len(s.DiskDrives)
	case collector.CategoryDiskPartitions:
		return len(s.DiskPartitions)
	case collector.CategoryVideoControllers:
		return len(s.VideoControllers)
	}
	return 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
