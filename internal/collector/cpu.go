package collector

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/go-tangra/go-tangra-sysinfo/internal/extract"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Virtualization states reported by CPUInfo.VirtualizationFirmwareEnabled.
const (
	VirtualizationEnabled  = "ENABLED"
	VirtualizationDisabled = "DISABLED"
	VirtualizationUnknown  = "UNKNOWN"
)

var (
	cpuName = extract.String("Name").Then(func(s string) string {
		return whitespaceRun.ReplaceAllString(s, " ")
	})
	cpuDeviceID     = extract.String("DeviceID").Req()
	cpuManufacturer = extract.String("Manufacturer").Req()
	cpuProcessorID  = extract.String("ProcessorId").Req()
	cpuPartNumber   = extract.String("PartNumber").Req()
	cpuSerialNumber = extract.String("SerialNumber").Req().Then(strings.TrimSpace)
	cpuUniqueID     = extract.String("UniqueId")

	cpuArchitecture = extract.Enum("Architecture", cpuArchitectureNames.lookup, CPUArchitectureNone).Req()
	cpuFamily       = extract.Enum("Family", lookupCPUFamily, CPUFamilyNone).Req()
	cpuStatus       = extract.Enum("CpuStatus", lookupCPUStatus, CPUStatusNone).Req()
	cpuVoltage      = extract.Enum("CurrentVoltage", cpuVoltageNames.lookup, CPUVoltageNone).Or(CPUVoltageUnknown)
	cpuType         = extract.Enum("ProcessorType", cpuTypeNames.lookup, CPUTypeNone).Req()

	cpuAddressWidth = extract.Int("AddressWidth").Req()
	cpuDataWidth    = extract.Int("DataWidth").Req()
	cpuMaxClock     = extract.Int("MaxClockSpeed").Req()
	cpuCurrentClock = extract.Int("CurrentClockSpeed").Req()
	cpuLoad         = extract.Int("LoadPercentage").Req()
	cpuCores        = extract.Int("NumberOfCores").Req()
	cpuEnabledCores = extract.Int("NumberOfEnabledCore").Req()
	cpuLogical      = extract.Int("NumberOfLogicalProcessors").Req()
	cpuThreads      = extract.Int("ThreadCount")
	cpuLevel        = extract.Int("Level").Req()
	cpuL2Size       = extract.Int("L2CacheSize")
	cpuL2Speed      = extract.Int("L2CacheSpeed")
	cpuL3Size       = extract.Int("L3CacheSize")
	cpuL3Speed      = extract.Int("L3CacheSpeed")

	// Anything but a readable boolean is reported as unknown.
	cpuVirtualization = extract.New("VirtualizationFirmwareEnabled", VirtualizationUnknown, func(raw any) (string, error) {
		enabled, err := extract.ToBool(raw)
		if err != nil {
			return VirtualizationUnknown, err
		}
		if enabled {
			return VirtualizationEnabled, nil
		}
		return VirtualizationDisabled, nil
	}).Tolerant()
)

func decodeCPU(bag wmiquery.PropertyBag) (CPUInfo, error) {
	d := extract.NewDecoder(bag)
	info := CPUInfo{
		Name:                          extract.Value(d, cpuName),
		DeviceID:                      extract.Value(d, cpuDeviceID),
		Manufacturer:                  extract.Value(d, cpuManufacturer),
		ProcessorID:                   extract.Value(d, cpuProcessorID),
		PartNumber:                    extract.Value(d, cpuPartNumber),
		SerialNumber:                  extract.Value(d, cpuSerialNumber),
		UniqueID:                      extract.Value(d, cpuUniqueID),
		Architecture:                  extract.Value(d, cpuArchitecture),
		Family:                        extract.Value(d, cpuFamily),
		Status:                        extract.Value(d, cpuStatus),
		CurrentVoltage:                extract.Value(d, cpuVoltage),
		ProcessorType:                 extract.Value(d, cpuType),
		AddressWidth:                  extract.Value(d, cpuAddressWidth),
		DataWidth:                     extract.Value(d, cpuDataWidth),
		MaxClockSpeed:                 extract.Value(d, cpuMaxClock),
		CurrentClockSpeed:             extract.Value(d, cpuCurrentClock),
		LoadPercentage:                extract.Value(d, cpuLoad),
		NumberOfCores:                 extract.Value(d, cpuCores),
		NumberOfEnabledCores:          extract.Value(d, cpuEnabledCores),
		NumberOfLogicalProcessors:     extract.Value(d, cpuLogical),
		ThreadCount:                   extract.Value(d, cpuThreads),
		Level:                         extract.Value(d, cpuLevel),
		L2CacheSize:                   extract.Value(d, cpuL2Size),
		L2CacheSpeed:                  extract.Value(d, cpuL2Speed),
		L3CacheSize:                   extract.Value(d, cpuL3Size),
		L3CacheSpeed:                  extract.Value(d, cpuL3Speed),
		VirtualizationFirmwareEnabled: extract.Value(d, cpuVirtualization),
	}
	return info, d.Err()
}

// NewCPUCollector returns the Win32_Processor collector.
func NewCPUCollector(q wmiquery.Querier, log zerolog.Logger) *RowCollector[CPUInfo] {
	return newRowCollector(CategoryCPU, ClassProcessor, q, decodeCPU, log)
}
