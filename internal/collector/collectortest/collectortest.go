// Package collectortest provides well-formed WMI rows and a fixed
// Environment for exercising collectors without a Windows host.
package collectortest

import (
	"context"
	"maps"

	"github.com/go-tangra/go-tangra-sysinfo/internal/collector"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

// Processor returns a complete Win32_Processor row.
func Processor() wmiquery.Bag {
	return wmiquery.Bag{
		"Name":                          "Intel(R) Core(TM)  i7-9700K   CPU @ 3.60GHz",
		"DeviceID":                      "CPU0",
		"Manufacturer":                  "GenuineIntel",
		"ProcessorId":                   "BFEBFBFF000906ED",
		"PartNumber":                    "To Be Filled By O.E.M.",
		"SerialNumber":                  "  To Be Filled By O.E.M.  ",
		"UniqueId":                      nil,
		"Architecture":                  int32(9),
		"Family":                        int32(198),
		"CpuStatus":                     int32(1),
		"CurrentVoltage":                int32(2),
		"ProcessorType":                 int32(3),
		"AddressWidth":                  int32(64),
		"DataWidth":                     int32(64),
		"MaxClockSpeed":                 int32(3600),
		"CurrentClockSpeed":             int32(3600),
		"LoadPercentage":                int32(7),
		"NumberOfCores":                 int32(8),
		"NumberOfEnabledCore":           int32(8),
		"NumberOfLogicalProcessors":     int32(8),
		"ThreadCount":                   int32(8),
		"Level":                         int32(6),
		"L2CacheSize":                   int32(2048),
		"L2CacheSpeed":                  nil,
		"L3CacheSize":                   int32(12288),
		"L3CacheSpeed":                  int32(0),
		"VirtualizationFirmwareEnabled": true,
	}
}

// MemoryBank returns a complete Win32_PhysicalMemory row. Capacity arrives
// as a string, the way WMI delivers uint64 properties.
func MemoryBank(capacity string, dataWidth int32) wmiquery.Bag {
	return wmiquery.Bag{
		"Name":                 "Physical Memory",
		"BankLabel":            "BANK 0",
		"Description":          "Physical Memory",
		"DeviceLocator":        "ChannelA-DIMM0",
		"Manufacturer":         "Kingston",
		"SerialNumber":         "1A2B3C4D",
		"SKU":                  nil,
		"Status":               nil,
		"Model":                nil,
		"OtherIdentifyingInfo": nil,
		"PartNumber":           "KHX3200C16D4/8GX  ",
		"Tag":                  "Physical Memory 0",
		"Version":              nil,
		"Capacity":             capacity,
		"DataWidth":            dataWidth,
		"TotalWidth":           int32(64),
		"Speed":                int32(3200),
		"SMBIOSMemoryType":     int32(26),
		"TypeDetail":           int32(128),
		"PositionInRow":        nil,
		"FormFactor":           int32(8),
	}
}

// DiskDrive returns a complete Win32_DiskDrive row.
func DiskDrive() wmiquery.Bag {
	return wmiquery.Bag{
		"Name":                    `\\.\PHYSICALDRIVE0`,
		"DeviceID":                `\\.\PHYSICALDRIVE0`,
		"Model":                   "Samsung SSD 970 EVO Plus 1TB",
		"Manufacturer":            "(Standard disk drives)",
		"SerialNumber":            " 0025_3852_91B0_1234. ",
		"Status":                  "OK",
		"StatusInfo":              nil,
		"SystemCreationClassName": "Win32_ComputerSystem",
		"SystemName":              "WORKSTATION",
		"Size":                    "1000202273280",
		"TotalCylinders":          "121601",
		"TotalHeads":              int32(255),
		"TotalSectors":            "1953520065",
		"TotalTracks":             "31008255",
		"TracksPerCylinder":       int32(255),
		"NumberOfMediaSupported":  nil,
		"Partitions":              int32(3),
		"Signature":               int64(3735928559),
	}
}

// DiskPartition returns a complete Win32_DiskPartition row.
func DiskPartition() wmiquery.Bag {
	return wmiquery.Bag{
		"Name":                    "Disk #0, Partition #1",
		"DeviceID":                "Disk #0, Partition #1",
		"Type":                    "GPT: Basic Data",
		"Status":                  nil,
		"StatusInfo":              nil,
		"SystemCreationClassName": "Win32_ComputerSystem",
		"SystemName":              "WORKSTATION",
		"Size":                    "999345127424",
		"NumberOfBlocks":          "1951845952",
		"Bootable":                false,
		"BootPartition":           false,
		"PrimaryPartition":        true,
		"RewritePartition":        nil,
	}
}

// VideoController returns a complete Win32_VideoController row.
func VideoController() wmiquery.Bag {
	return wmiquery.Bag{
		"Name":                        "NVIDIA GeForce RTX 3070",
		"Description":                 "NVIDIA GeForce RTX 3070",
		"VideoProcessor":              "NVIDIA GeForce RTX 3070",
		"VideoModeDescription":        "2560 x 1440 x 4294967296 colors",
		"SystemName":                  "WORKSTATION",
		"Status":                      "OK",
		"AdapterDACType":              "Integrated RAMDAC",
		"DriverDate":                  "20230615143022.000000+000",
		"AdapterRAM":                  int64(4293918720),
		"CurrentBitsPerPixel":         int32(32),
		"CurrentHorizontalResolution": int32(2560),
		"CurrentVerticalResolution":   int32(1440),
		"CurrentNumberOfColors":       "4294967296",
		"CurrentNumberOfColumns":      "0",
		"CurrentNumberOfRows":         "0",
		"CurrentRefreshRate":          int32(144),
		"CurrentScanMode":             int32(4),
		"MinRefreshRate":              int32(50),
		"MaxRefreshRate":              int32(165),
		"DeviceSpecificPens":          nil,
		"DitherType":                  int32(0),
		"ColorTableEntries":           nil,
		"LastErrorCode":               nil,
		"MaxMemorySupported":          nil,
		"MaxNumberControlled":         nil,
		"VideoMode":                   nil,
		"VideoArchitecture":           int32(5),
		"VideoMemoryType":             int32(2),
	}
}

// Without returns a copy of bag with keys removed.
func Without(bag wmiquery.Bag, keys ...string) wmiquery.Bag {
	out := maps.Clone(bag)
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// With returns a copy of bag with key set to value.
func With(bag wmiquery.Bag, key string, value any) wmiquery.Bag {
	out := maps.Clone(bag)
	out[key] = value
	return out
}

// Populated returns a StaticQuerier serving one well-formed row for every
// collector class, with two memory banks.
func Populated() *wmiquery.StaticQuerier {
	return wmiquery.NewStaticQuerier().
		Set(collector.ClassProcessor, Processor()).
		Set(collector.ClassPhysicalMemory, MemoryBank("8589934592", 64), MemoryBank("17179869184", 64)).
		Set(collector.ClassDiskDrive, DiskDrive()).
		Set(collector.ClassDiskPartition, DiskPartition()).
		Set(collector.ClassVideoController, VideoController())
}

// Environment is a fixed collector.Environment. A non-nil Err fails every
// fallible method.
type Environment struct {
	Name    string
	OSInfo  collector.OSInfo
	Runtime string
	Procs   int
	Drives  []string
	Env     map[string]string
	Firm    *collector.FirmwareInfo
	FirmErr error
	Err     error
}

// NewEnvironment returns a populated Windows-like Environment.
func NewEnvironment() *Environment {
	return &Environment{
		Name: "WORKSTATION",
		OSInfo: collector.OSInfo{
			Platform: "Microsoft Windows 11 Pro",
			Version:  "10.0.22631 Build 22631",
			Is64Bit:  true,
		},
		Runtime: "go1.24.0",
		Procs:   8,
		Drives:  []string{`C:\`, `D:\`},
		Env:     map[string]string{"OS": "Windows_NT", "PROCESSOR_ARCHITECTURE": "AMD64"},
		Firm: &collector.FirmwareInfo{
			BIOSVendor:         "American Megatrends Inc.",
			BIOSVersion:        "F12",
			SystemManufacturer: "Gigabyte Technology Co., Ltd.",
		},
	}
}

func (e *Environment) MachineName() (string, error) { return e.Name, e.Err }

func (e *Environment) OS(ctx context.Context) (collector.OSInfo, error) {
	if err := ctx.Err(); err != nil {
		return collector.OSInfo{}, err
	}
	return e.OSInfo, e.Err
}

func (e *Environment) RuntimeVersion() string { return e.Runtime }

func (e *Environment) ProcessorCount(context.Context) (int, error) { return e.Procs, e.Err }

func (e *Environment) LogicalDrives(context.Context) ([]string, error) {
	return append([]string(nil), e.Drives...), e.Err
}

func (e *Environment) EnvironmentVariables() map[string]string { return maps.Clone(e.Env) }

func (e *Environment) Firmware() (*collector.FirmwareInfo, error) {
	if e.FirmErr != nil {
		return nil, e.FirmErr
	}
	if e.Firm == nil {
		return nil, nil
	}
	fw := *e.Firm
	return &fw, nil
}
