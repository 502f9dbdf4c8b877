package collector

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/siderolabs/go-smbios/smbios"
)

// OSInfo identifies the running operating system.
type OSInfo struct {
	Platform    string
	Version     string
	ServicePack string
	Is64Bit     bool
}

// Environment exposes the host and process facts the platform collector
// reports. HostEnvironment is the production implementation.
type Environment interface {
	MachineName() (string, error)
	OS(ctx context.Context) (OSInfo, error)
	RuntimeVersion() string
	ProcessorCount(ctx context.Context) (int, error)
	LogicalDrives(ctx context.Context) ([]string, error)
	EnvironmentVariables() map[string]string
	Firmware() (*FirmwareInfo, error)
}

// HostEnvironment reads the local machine through gopsutil, the process
// environment and SMBIOS.
type HostEnvironment struct{}

// NewHostEnvironment returns the local machine's Environment.
func NewHostEnvironment() *HostEnvironment {
	return &HostEnvironment{}
}

func (HostEnvironment) MachineName() (string, error) {
	return os.Hostname()
}

func (HostEnvironment) OS(ctx context.Context) (OSInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return OSInfo{}, fmt.Errorf("host info: %w", err)
	}
	sp, err := servicePack(ctx)
	if err != nil {
		return OSInfo{}, fmt.Errorf("service pack: %w", err)
	}
	return OSInfo{
		Platform:    info.Platform,
		Version:     info.PlatformVersion,
		ServicePack: sp,
		Is64Bit:     is64BitArch(info.KernelArch),
	}, nil
}

func (HostEnvironment) RuntimeVersion() string {
	return runtime.Version()
}

func (HostEnvironment) ProcessorCount(ctx context.Context) (int, error) {
	return cpu.CountsWithContext(ctx, true)
}

// LogicalDrives lists mounted volume roots in sorted order.
func (HostEnvironment) LogicalDrives(ctx context.Context) ([]string, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list partitions: %w", err)
	}
	seen := make(map[string]struct{}, len(parts))
	drives := make([]string, 0, len(parts))
	for _, p := range parts {
		root := driveRoot(p.Mountpoint)
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		drives = append(drives, root)
	}
	sort.Strings(drives)
	return drives, nil
}

func (HostEnvironment) EnvironmentVariables() map[string]string {
	return environMap(os.Environ())
}

// Firmware reads the SMBIOS tables. Machines without readable tables
// return an error and the platform record carries no firmware.
func (HostEnvironment) Firmware() (*FirmwareInfo, error) {
	s, err := smbios.New()
	if err != nil {
		return nil, fmt.Errorf("read smbios: %w", err)
	}
	return &FirmwareInfo{
		BIOSVendor:         s.BIOSInformation.Vendor,
		BIOSVersion:        s.BIOSInformation.Version,
		BIOSReleaseDate:    s.BIOSInformation.ReleaseDate,
		SystemManufacturer: s.SystemInformation.Manufacturer,
		SystemProduct:      s.SystemInformation.ProductName,
		SystemSerialNumber: s.SystemInformation.SerialNumber,
		SystemUUID:         s.SystemInformation.UUID,
		BaseboardVendor:    s.BaseboardInformation.Manufacturer,
		BaseboardProduct:   s.BaseboardInformation.Product,
	}, nil
}

func is64BitArch(arch string) bool {
	switch strings.ToLower(arch) {
	case "x86_64", "amd64", "arm64", "aarch64", "ia64", "ppc64", "ppc64le", "s390x":
		return true
	}
	return false
}

// environMap splits KEY=VALUE pairs. Windows keeps per-drive working
// directories in variables such as "=C:", whose name starts with '='.
func environMap(environ []string) map[string]string {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if kv == "" {
			continue
		}
		i := strings.IndexByte(kv[1:], '=') + 1
		if i == 0 {
			env[kv] = ""
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}
	return env
}
