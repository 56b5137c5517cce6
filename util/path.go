package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading ~ with $HOME.
func ExpandUser(path string) string {
	if path == "~" {
		return os.Getenv("HOME")
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return path
}

// Exists reports whether a regular file is present at path.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
