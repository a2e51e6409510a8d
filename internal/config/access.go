package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// AccessResult reports whether a configured directory is present and usable.
type AccessResult struct {
	Name   string
	Path   string
	Passed bool
	Detail string
}

// CheckDirectoryAccess verifies that path exists, is a directory, and is
// readable/writable/traversable by the current process.
func CheckDirectoryAccess(name, path string) AccessResult {
	if path == "" {
		return AccessResult{Name: name, Path: path, Passed: true, Detail: "not configured, skipped"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return AccessResult{Name: name, Path: path, Detail: "does not exist"}
		}
		return AccessResult{Name: name, Path: path, Detail: fmt.Sprintf("stat: %v", err)}
	}
	if !info.IsDir() {
		return AccessResult{Name: name, Path: path, Detail: "is not a directory"}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return AccessResult{Name: name, Path: path, Detail: fmt.Sprintf("insufficient permissions: %v", err)}
	}
	return AccessResult{Name: name, Path: path, Passed: true, Detail: "read/write ok"}
}

// CheckDirectories runs CheckDirectoryAccess over every directory the
// configuration names, skipping unset ones.
func (c *Config) CheckDirectories() []AccessResult {
	return []AccessResult{
		CheckDirectoryAccess("library.tv_dir", c.Library.TVDir),
		CheckDirectoryAccess("paths.library_dir", c.Paths.LibraryDir),
		CheckDirectoryAccess("paths.review_dir", c.Paths.ReviewDir),
		CheckDirectoryAccess("paths.log_dir", c.Paths.LogDir),
	}
}
