//go:build windows

package collector

import (
	"context"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32OperatingSystem struct {
	CSDVersion *string
}

// servicePack returns Win32_OperatingSystem.CSDVersion, which is empty on
// every release since Windows 8.
func servicePack(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var dst []win32OperatingSystem
	if err := wmi.Query("SELECT CSDVersion FROM Win32_OperatingSystem", &dst); err != nil {
		return "", err
	}
	if len(dst) == 0 || dst[0].CSDVersion == nil {
		return "", nil
	}
	return *dst[0].CSDVersion, nil
}

// driveRoot turns a mountpoint such as "C:" into the root path "C:\".
func driveRoot(mount string) string {
	if strings.HasSuffix(mount, `\`) {
		return mount
	}
	return mount + `\`
}
