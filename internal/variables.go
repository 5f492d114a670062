package internal

import (
	"fmt"
	"runtime"
	"strings"
)

const (

	// Program name, used for the command name and XDG directories.
	Name = "rpmlb"

	// Placeholder for a variable not set at build time.
	defaultUndefined = "(undefined)"

	// Version string of a build made outside the release pipeline.
	defaultLocalBuild = "(local)"

	// Branch whose builds carry no stage suffix.
	mainBranch = "main"
)

// Set through -ldflags "-X github.com/cruciblehq/rpmlb/internal.version=..."
var (
	version   = "" // Release version, such as "0.3.1".
	stage     = "" // Branch the release was cut from.
	gitCommit = "" // Abbreviated commit hash.

	rawQuiet   = "false" // Build-time default of --quiet.
	rawDebug   = "false" // Build-time default of --debug.
	rawVerbose = "false" // Build-time default of --verbose.
)

// Returns the release version without a leading "v", or "(undefined)".
func Version() string {
	v := strings.ToLower(strings.TrimSpace(version))
	if v == "" {
		return defaultUndefined
	}
	return strings.TrimPrefix(v, "v")
}

// Returns the lower-cased release stage, or "(undefined)".
func Stage() string {
	s := strings.TrimSpace(stage)
	if s == "" {
		return defaultUndefined
	}
	return strings.ToLower(s)
}

// Returns the commit hash, or "(undefined)".
func GitCommit() string {
	c := strings.TrimSpace(gitCommit)
	if c == "" {
		return defaultUndefined
	}
	return c
}

// Returns the build architecture.
func Arch() string {
	return runtime.GOARCH
}

// Reports whether any of version, commit and stage is missing.
func IsLocal() bool {
	for _, v := range []string{version, gitCommit, stage} {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// Returns "(local)" for local builds and
// "<version>[+<stage>] <commit> [<arch>]" otherwise. Builds from the main
// branch omit the stage.
func VersionString() string {
	if IsLocal() {
		return defaultLocalBuild
	}

	suffix := ""
	if s := Stage(); s != mainBranch {
		suffix = "+" + s
	}
	return fmt.Sprintf("%s%s %s [%s]", Version(), suffix, GitCommit(), Arch())
}
