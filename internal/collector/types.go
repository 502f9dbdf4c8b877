package collector

// CPUInfo describes one Win32_Processor instance.
type CPUInfo struct {
	Name                          string          `json:"name" yaml:"name"`
	DeviceID                      string          `json:"device_id" yaml:"device_id"`
	Manufacturer                  string          `json:"manufacturer" yaml:"manufacturer"`
	ProcessorID                   string          `json:"processor_id" yaml:"processor_id"`
	PartNumber                    string          `json:"part_number" yaml:"part_number"`
	SerialNumber                  string          `json:"serial_number" yaml:"serial_number"`
	UniqueID                      string          `json:"unique_id" yaml:"unique_id"`
	Architecture                  CPUArchitecture `json:"architecture" yaml:"architecture"`
	Family                        CPUFamily       `json:"family" yaml:"family"`
	Status                        CPUStatus       `json:"status" yaml:"status"`
	CurrentVoltage                CPUVoltage      `json:"current_voltage" yaml:"current_voltage"`
	ProcessorType                 CPUType         `json:"processor_type" yaml:"processor_type"`
	AddressWidth                  int             `json:"address_width" yaml:"address_width"`
	DataWidth                     int             `json:"data_width" yaml:"data_width"`
	MaxClockSpeed                 int             `json:"max_clock_speed" yaml:"max_clock_speed"`
	CurrentClockSpeed             int             `json:"current_clock_speed" yaml:"current_clock_speed"`
	LoadPercentage                int             `json:"load_percentage" yaml:"load_percentage"`
	NumberOfCores                 int             `json:"number_of_cores" yaml:"number_of_cores"`
	NumberOfEnabledCores          int             `json:"number_of_enabled_cores" yaml:"number_of_enabled_cores"`
	NumberOfLogicalProcessors     int             `json:"number_of_logical_processors" yaml:"number_of_logical_processors"`
	ThreadCount                   int             `json:"thread_count" yaml:"thread_count"`
	Level                         int             `json:"level" yaml:"level"`
	L2CacheSize                   int             `json:"l2_cache_size" yaml:"l2_cache_size"`
	L2CacheSpeed                  int             `json:"l2_cache_speed" yaml:"l2_cache_speed"`
	L3CacheSize                   int             `json:"l3_cache_size" yaml:"l3_cache_size"`
	L3CacheSpeed                  int             `json:"l3_cache_speed" yaml:"l3_cache_speed"`
	VirtualizationFirmwareEnabled string          `json:"virtualization_firmware_enabled" yaml:"virtualization_firmware_enabled"`
}

// MemoryBankInfo describes one Win32_PhysicalMemory instance.
type MemoryBankInfo struct {
	Name                 string           `json:"name" yaml:"name"`
	BankLabel            string           `json:"bank_label" yaml:"bank_label"`
	Description          string           `json:"description" yaml:"description"`
	DeviceLocator        string           `json:"device_locator" yaml:"device_locator"`
	Manufacturer         string           `json:"manufacturer" yaml:"manufacturer"`
	SerialNumber         string           `json:"serial_number" yaml:"serial_number"`
	SKU                  string           `json:"sku" yaml:"sku"`
	Status               string           `json:"status" yaml:"status"`
	Model                string           `json:"model" yaml:"model"`
	OtherIdentifyingInfo string           `json:"other_identifying_info" yaml:"other_identifying_info"`
	PartNumber           string           `json:"part_number" yaml:"part_number"`
	Tag                  string           `json:"tag" yaml:"tag"`
	Version              string           `json:"version" yaml:"version"`
	Capacity             int64            `json:"capacity" yaml:"capacity"`
	DataWidth            int              `json:"data_width" yaml:"data_width"`
	TotalWidth           int              `json:"total_width" yaml:"total_width"`
	Speed                int              `json:"speed" yaml:"speed"`
	SMBIOSMemoryType     int              `json:"smbios_memory_type" yaml:"smbios_memory_type"`
	TypeDetail           int              `json:"type_detail" yaml:"type_detail"`
	PositionInRow        int              `json:"position_in_row" yaml:"position_in_row"`
	FormFactor           MemoryFormFactor `json:"form_factor" yaml:"form_factor"`
}

// MemorySummary reduces every memory bank into machine totals.
type MemorySummary struct {
	Banks      int   `json:"banks" yaml:"banks"`
	DataWidth  int   `json:"data_width" yaml:"data_width"`
	TotalBytes int64 `json:"total_bytes" yaml:"total_bytes"`
	TotalMiB   int64 `json:"total_mib" yaml:"total_mib"`
}

// FirmwareInfo is the SMBIOS identity of the machine.
type FirmwareInfo struct {
	BIOSVendor         string `json:"bios_vendor" yaml:"bios_vendor"`
	BIOSVersion        string `json:"bios_version" yaml:"bios_version"`
	BIOSReleaseDate    string `json:"bios_release_date" yaml:"bios_release_date"`
	SystemManufacturer string `json:"system_manufacturer" yaml:"system_manufacturer"`
	SystemProduct      string `json:"system_product" yaml:"system_product"`
	SystemSerialNumber string `json:"system_serial_number" yaml:"system_serial_number"`
	SystemUUID         string `json:"system_uuid" yaml:"system_uuid"`
	BaseboardVendor    string `json:"baseboard_vendor" yaml:"baseboard_vendor"`
	BaseboardProduct   string `json:"baseboard_product" yaml:"baseboard_product"`
}

// PlatformInfo describes the operating system and process environment.
type PlatformInfo struct {
	MachineName          string            `json:"machine_name" yaml:"machine_name"`
	Platform             string            `json:"platform" yaml:"platform"`
	Version              string            `json:"version" yaml:"version"`
	ServicePack          string            `json:"service_pack" yaml:"service_pack"`
	RuntimeVersion       string            `json:"runtime_version" yaml:"runtime_version"`
	Is64BitOS            bool              `json:"is_64bit_os" yaml:"is_64bit_os"`
	ProcessorCount       int               `json:"processor_count" yaml:"processor_count"`
	LogicalDrives        []string          `json:"logical_drives" yaml:"logical_drives"`
	EnvironmentVariables map[string]string `json:"environment_variables" yaml:"environment_variables"`
	Firmware             *FirmwareInfo     `json:"firmware,omitempty" yaml:"firmware,omitempty"`
}

// DiskDriveInfo describes one Win32_DiskDrive instance.
type DiskDriveInfo struct {
	Name                    string `json:"name" yaml:"name"`
	DeviceID                string `json:"device_id" yaml:"device_id"`
	Model                   string `json:"model" yaml:"model"`
	Manufacturer            string `json:"manufacturer" yaml:"manufacturer"`
	SerialNumber            string `json:"serial_number" yaml:"serial_number"`
	Status                  string `json:"status" yaml:"status"`
	StatusInfo              string `json:"status_info" yaml:"status_info"`
	SystemCreationClassName string `json:"system_creation_class_name" yaml:"system_creation_class_name"`
	SystemName              string `json:"system_name" yaml:"system_name"`
	Size                    int64  `json:"size" yaml:"size"`
	TotalCylinders          int64  `json:"total_cylinders" yaml:"total_cylinders"`
	TotalHeads              int64  `json:"total_heads" yaml:"total_heads"`
	TotalSectors            int64  `json:"total_sectors" yaml:"total_sectors"`
	TotalTracks             int64  `json:"total_tracks" yaml:"total_tracks"`
	TracksPerCylinder       int    `json:"tracks_per_cylinder" yaml:"tracks_per_cylinder"`
	NumberOfMediaSupported  int    `json:"number_of_media_supported" yaml:"number_of_media_supported"`
	Partitions              int    `json:"partitions" yaml:"partitions"`
	Signature               int64  `json:"signature" yaml:"signature"`
}

// DiskPartitionInfo describes one Win32_DiskPartition instance.
type DiskPartitionInfo struct {
	Name                    string `json:"name" yaml:"name"`
	DeviceID                string `json:"device_id" yaml:"device_id"`
	Type                    string `json:"type" yaml:"type"`
	Status                  string `json:"status" yaml:"status"`
	StatusInfo              string `json:"status_info" yaml:"status_info"`
	SystemCreationClassName string `json:"system_creation_class_name" yaml:"system_creation_class_name"`
	SystemName              string `json:"system_name" yaml:"system_name"`
	Size                    int64  `json:"size" yaml:"size"`
	NumberOfBlocks          int64  `json:"number_of_blocks" yaml:"number_of_blocks"`
	Bootable                *bool  `json:"bootable" yaml:"bootable"`
	BootPartition           *bool  `json:"boot_partition" yaml:"boot_partition"`
	PrimaryPartition        *bool  `json:"primary_partition" yaml:"primary_partition"`
	RewritePartition        *bool  `json:"rewrite_partition" yaml:"rewrite_partition"`
}

// VideoControllerInfo describes one Win32_VideoController instance.
type VideoControllerInfo struct {
	Name                        string            `json:"name" yaml:"name"`
	Description                 string            `json:"description" yaml:"description"`
	VideoProcessor              string            `json:"video_processor" yaml:"video_processor"`
	VideoModeDescription        string            `json:"video_mode_description" yaml:"video_mode_description"`
	SystemName                  string            `json:"system_name" yaml:"system_name"`
	Status                      string            `json:"status" yaml:"status"`
	AdapterDACType              string            `json:"adapter_dac_type" yaml:"adapter_dac_type"`
	DriverDate                  string            `json:"driver_date" yaml:"driver_date"`
	AdapterRAM                  int64             `json:"adapter_ram" yaml:"adapter_ram"`
	CurrentBitsPerPixel         int               `json:"current_bits_per_pixel" yaml:"current_bits_per_pixel"`
	CurrentHorizontalResolution int               `json:"current_horizontal_resolution" yaml:"current_horizontal_resolution"`
	CurrentVerticalResolution   int               `json:"current_vertical_resolution" yaml:"current_vertical_resolution"`
	CurrentNumberOfColors       int64             `json:"current_number_of_colors" yaml:"current_number_of_colors"`
	CurrentNumberOfColumns      int64             `json:"current_number_of_columns" yaml:"current_number_of_columns"`
	CurrentNumberOfRows         int64             `json:"current_number_of_rows" yaml:"current_number_of_rows"`
	CurrentRefreshRate          int               `json:"current_refresh_rate" yaml:"current_refresh_rate"`
	CurrentScanMode             int               `json:"current_scan_mode" yaml:"current_scan_mode"`
	MinRefreshRate              int               `json:"min_refresh_rate" yaml:"min_refresh_rate"`
	MaxRefreshRate              int               `json:"max_refresh_rate" yaml:"max_refresh_rate"`
	DeviceSpecificPens          int               `json:"device_specific_pens" yaml:"device_specific_pens"`
	DitherType                  int               `json:"dither_type" yaml:"dither_type"`
	ColorTableEntries           int               `json:"color_table_entries" yaml:"color_table_entries"`
	LastErrorCode               int               `json:"last_error_code" yaml:"last_error_code"`
	MaxMemorySupported          int               `json:"max_memory_supported" yaml:"max_memory_supported"`
	MaxNumberControlled         int               `json:"max_number_controlled" yaml:"max_number_controlled"`
	VideoMode                   int               `json:"video_mode" yaml:"video_mode"`
	VideoArchitecture           VideoArchitecture `json:"video_architecture" yaml:"video_architecture"`
	VideoMemoryType             VideoMemoryType   `json:"video_memory_type" yaml:"video_memory_type"`
}
