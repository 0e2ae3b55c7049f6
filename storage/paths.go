package storage

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppDirName is the directory created under the user's download directory
// for received files.
const AppDirName = "bluedrop"

// Wrapper around the XDG lookup so tests can mock it.
var xdgDownloadDir = func() string {
	return xdg.UserDirs.Download
}

// DefaultUploadRoot returns the default directory for persisted uploads:
// a bluedrop folder inside the user's XDG download directory, falling back
// to ./uploads when no download directory is known (headless systems).
func DefaultUploadRoot() string {
	if dir := xdgDownloadDir(); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(".", "uploads")
}
