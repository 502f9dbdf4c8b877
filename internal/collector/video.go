package collector

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-tangra/go-tangra-sysinfo/internal/extract"
	"github.com/go-tangra/go-tangra-sysinfo/internal/wmiquery"
)

const (
	// cimDateLayout is the leading YYYYMMDDHHMMSS part of a CIM datetime.
	cimDateLayout    = "20060102150405"
	DriverDateLayout = "2006-01-02 15:04:05"
)

// FormatDriverDate renders a CIM datetime such as
// "20230615143022.000000+000" as "2023-06-15 14:30:22". Blank input gives
// "". The UTC offset suffix is ignored.
func FormatDriverDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", nil
	}
	if len(s) < len(cimDateLayout) {
		return "", fmt.Errorf("driver date %q is too short", raw)
	}
	t, err := time.Parse(cimDateLayout, s[:len(cimDateLayout)])
	if err != nil {
		return "", fmt.Errorf("driver date %q: %w", raw, err)
	}
	return t.Format(DriverDateLayout), nil
}

var (
	videoName                 = extract.String("Name").Req()
	videoDescription          = extract.String("Description").Req()
	videoProcessor            = extract.String("VideoProcessor").Req()
	videoModeDescription      = extract.String("VideoModeDescription").Req()
	videoSystemName           = extract.String("SystemName").Req()
	videoStatus               = extract.String("Status").Req()
	videoAdapterDACType       = extract.String("AdapterDACType")
	videoAdapterRAM           = extract.Int64("AdapterRAM")
	videoBitsPerPixel         = extract.Int("CurrentBitsPerPixel")
	videoHorizontalResolution = extract.Int("CurrentHorizontalResolution")
	videoVerticalResolution   = extract.Int("CurrentVerticalResolution")
	videoNumberOfColors       = extract.Int64("CurrentNumberOfColors")
	videoNumberOfColumns      = extract.Int64("CurrentNumberOfColumns")
	videoNumberOfRows         = extract.Int64("CurrentNumberOfRows")
	videoRefreshRate          = extract.Int("CurrentRefreshRate")
	videoScanMode             = extract.Int("CurrentScanMode")
	videoMinRefreshRate       = extract.Int("MinRefreshRate")
	videoMaxRefreshRate       = extract.Int("MaxRefreshRate")
	videoDeviceSpecificPens   = extract.Int("DeviceSpecificPens")
	videoDitherType           = extract.Int("DitherType")
	videoColorTableEntries    = extract.Int("ColorTableEntries")
	videoLastErrorCode        = extract.Int("LastErrorCode")
	videoMaxMemorySupported   = extract.Int("MaxMemorySupported")
	videoMaxNumberControlled  = extract.Int("MaxNumberControlled")
	videoMode                 = extract.Int("VideoMode")
	videoArchitecture         = extract.Enum("VideoArchitecture", videoArchitectureNames.lookup, VideoArchitectureUnknown)
	videoMemoryType           = extract.Enum("VideoMemoryType", videoMemoryTypeNames.lookup, VideoMemoryTypeUnknown)

	videoDriverDate = extract.New("DriverDate", "", func(raw any) (string, error) {
		s, err := extract.ToString(raw)
		if err != nil {
			return "", err
		}
		return FormatDriverDate(s)
	})
)

func decodeVideoController(bag wmiquery.PropertyBag) (VideoControllerInfo, error) {
	d := extract.NewDecoder(bag)
	info := VideoControllerInfo{
		Name:                        extract.Value(d, videoName),
		Description:                 extract.Value(d, videoDescription),
		VideoProcessor:              extract.Value(d, videoProcessor),
		VideoModeDescription:        extract.Value(d, videoModeDescription),
		SystemName:                  extract.Value(d, videoSystemName),
		Status:                      extract.Value(d, videoStatus),
		AdapterDACType:              extract.Value(d, videoAdapterDACType),
		DriverDate:                  extract.Value(d, videoDriverDate),
		AdapterRAM:                  extract.Value(d, videoAdapterRAM),
		CurrentBitsPerPixel:         extract.Value(d, videoBitsPerPixel),
		CurrentHorizontalResolution: extract.Value(d, videoHorizontalResolution),
		CurrentVerticalResolution:   extract.Value(d, videoVerticalResolution),
		CurrentNumberOfColors:       extract.Value(d, videoNumberOfColors),
		CurrentNumberOfColumns:      extract.Value(d, videoNumberOfColumns),
		CurrentNumberOfRows:         extract.Value(d, videoNumberOfRows),
		CurrentRefreshRate:          extract.Value(d, videoRefreshRate),
		CurrentScanMode:             extract.Value(d, videoScanMode),
		MinRefreshRate:              extract.Value(d, videoMinRefreshRate),
		MaxRefreshRate:              extract.Value(d, videoMaxRefreshRate),
		DeviceSpecificPens:          extract.Value(d, videoDeviceSpecificPens),
		DitherType:                  extract.Value(d, videoDitherType),
		ColorTableEntries:           extract.Value(d, videoColorTableEntries),
		LastErrorCode:               extract.Value(d, videoLastErrorCode),
		MaxMemorySupported:          extract.Value(d, videoMaxMemorySupported),
		MaxNumberControlled:         extract.Value(d, videoMaxNumberControlled),
		VideoMode:                   extract.Value(d, videoMode),
		VideoArchitecture:           extract.Value(d, videoArchitecture),
		VideoMemoryType:             extract.Value(d, videoMemoryType),
	}
	return info, d.Err()
}

// NewVideoControllerCollector returns the Win32_VideoController collector.
func NewVideoControllerCollector(q wmiquery.Querier, log zerolog.Logger) *RowCollector[VideoControllerInfo] {
	return newRowCollector(CategoryVideoControllers, ClassVideoController, q, decodeVideoController, log)
}
