//go:build !windows

package winsvc

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

// ErrUnsupported is returned by every service operation outside Windows.
var ErrUnsupported = errors.New("windows services are not supported on this platform")

// IsWindowsService reports false; only the Windows SCM starts services.
func IsWindowsService() bool { return false }

// RunService fails with ErrUnsupported.
func RunService(name string, _ func(ctx context.Context) error) error {
	return fmt.Errorf("run service %s: %w", name, ErrUnsupported)
}

// SetupEventLog leaves the global logger untouched.
func SetupEventLog(_ string, _ zerolog.Level) {}

// Install fails with ErrUnsupported.
func Install(name, _, _, _ string, _ []string) error {
	return fmt.Errorf("install service %s: %w", name, ErrUnsupported)
}

// Uninstall fails with ErrUnsupported.
func Uninstall(name string) error {
	return fmt.Errorf("uninstall service %s: %w", name, ErrUnsupported)
}

// ExePath returns the path of the running executable.
func ExePath() (string, error) {
	return os.Executable()
}
