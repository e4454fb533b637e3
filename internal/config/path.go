package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir picks where the Pebble archive lives when
// archive.dataDir is not configured. $XDG_DATA_HOME wins when set;
// otherwise the host's conventional application data location is used,
// with a dotdir in the home directory as the last resort.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "flexbuf")
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./data"
	}

	for _, c := range []struct{ probe, dir string }{
		{"/var/lib", "/var/lib/flexbuf"},
		{filepath.Join(home, "Library"), filepath.Join(home, "Library", "Application Support", "Flexbuf")},
		{filepath.Join(home, "AppData"), filepath.Join(home, "AppData", "Local", "Flexbuf")},
	} {
		if dirExists(c.probe) {
			return c.dir
		}
	}
	return filepath.Join(home, ".flexbuf")
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
