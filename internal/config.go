package internal

import "strconv"

var (
	quietMode   bool // Build-time default for quiet mode.
	debugMode   bool // Build-time default for debug logging.
	verboseMode bool // Build-time default for verbose logging.
)

// Parses the linker flags into usable runtime defaults.
//
// The rawQuiet, rawDebug, and rawVerbose variables should be set via ldflags
// during the build process. If not set, they default to "false". The parsed
// values are read-only; command-line flags are merged on top of them into an
// explicit logging configuration by the cli package.
func init() {
	if v, err := strconv.ParseBool(rawQuiet); err == nil {
		quietMode = v
	}
	if v, err := strconv.ParseBool(rawDebug); err == nil {
		debugMode = v
	}
	if v, err := strconv.ParseBool(rawVerbose); err == nil {
		verboseMode = v
	}
}

// Returns true if quiet mode was enabled at build time.
func IsQuiet() bool {
	return quietMode
}

// Returns true if debug mode was enabled at build time.
func IsDebug() bool {
	return debugMode
}

// Returns true if verbose logging was enabled at build time.
func IsVerbose() bool {
	return verboseMode
}
