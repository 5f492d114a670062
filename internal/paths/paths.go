package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (

	// Name used for directory and file naming.
	programName = "rpmlb"

	// Default permission mode for directories.
	DefaultDirMode os.FileMode = 0755

	// Default permission mode for files.
	DefaultFileMode os.FileMode = 0644
)

// Path to the optional configuration file holding flag defaults.
//
//	Linux:   $XDG_CONFIG_HOME/rpmlb/config.yaml or ~/.config/rpmlb/config.yaml
//	macOS:   ~/Library/Application Support/rpmlb/config.yaml
func ConfigFile() string {
	return filepath.Join(xdg.ConfigHome, programName, "config.yaml")
}

// Parent directory for ephemeral working directories.
//
//	Linux:   $XDG_CACHE_HOME/rpmlb/work or ~/.cache/rpmlb/work
//	macOS:   ~/Library/Caches/rpmlb/work
func WorkBase() string {
	return filepath.Join(xdg.CacheHome, programName, "work")
}
