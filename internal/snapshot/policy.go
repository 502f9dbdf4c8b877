package snapshot

import "github.com/go-tangra/go-tangra-sysinfo/internal/collector"

// Policy selects which categories an Assemble call collects. The zero
// Policy collects nothing.
type Policy struct {
	CPU              bool `mapstructure:"cpu" json:"cpu" yaml:"cpu"`
	MemoryBanks      bool `mapstructure:"memory_banks" json:"memory_banks" yaml:"memory_banks"`
	MemorySummary    bool `mapstructure:"memory_summary" json:"memory_summary" yaml:"memory_summary"`
	Platform         bool `mapstructure:"platform" json:"platform" yaml:"platform"`
	DiskDrives       bool `mapstructure:"disk_drives" json:"disk_drives" yaml:"disk_drives"`
	DiskPartitions   bool `mapstructure:"disk_partitions" json:"disk_partitions" yaml:"disk_partitions"`
	VideoControllers bool `mapstructure:"video_controllers" json:"video_controllers" yaml:"video_controllers"`
}

// CollectAll enables every category.
func CollectAll() Policy {
	return Policy{
		CPU:              true,
		MemoryBanks:      true,
		MemorySummary:    true,
		Platform:         true,
		DiskDrives:       true,
		DiskPartitions:   true,
		VideoControllers: true,
	}
}

// Enabled reports whether c is collected under p.
func (p Policy) Enabled(c collector.Category) bool {
	switch c {
	case collector.CategoryCPU:
		return p.CPU
	case collector.CategoryMemoryBanks:
		return p.MemoryBanks
	case collector.CategoryMemorySummary:
		return p.MemorySummary
	case collector.CategoryPlatform:
		return p.Platform
	case collector.CategoryDiskDrives:
		return p.DiskDrives
	case collector.CategoryDiskPartitions:
		return p.DiskPartitions
	case collector.CategoryVideoControllers:
		return p.VideoControllers
	}
	return false
}

// EnabledCategories lists the enabled categories in snapshot order.
func (p Policy) EnabledCategories() []collector.Category {
	var out []collector.Category
	for _, c := range collector.Categories {
		if p.Enabled(c) {
			out = append(out, c)
		}
	}
	return out
}
