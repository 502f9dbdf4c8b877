//go:build !windows

package collector

import "context"

func servicePack(context.Context) (string, error) {
	return "", nil
}

func driveRoot(mount string) string {
	return mount
}
