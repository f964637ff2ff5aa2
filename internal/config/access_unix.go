//go:build unix

package config

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// checkDirAccess reports whether the process can list, read and create
// files in dir.
func checkDirAccess(dir string) error {
	if err := unix.Access(dir, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("directory %q is not writable: %w", dir, err)
	}
	return nil
}
