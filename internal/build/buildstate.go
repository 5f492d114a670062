package build

import (
	"fmt"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/cruciblehq/rpmlb/internal/command"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/specfile"
)

// Macros in effect for one rpmbuild invocation.
//
// The base state carries the directory layout shared by every package.
// resolve overlays the macros of a single package without modifying the
// base.
type buildState struct {
	defines  map[string]string // Passed to rpmbuild with --define.
	macros   map[string]string // Prepended to the spec file.
	replaced map[string]string // Rewritten in the spec file.
}

// Creates a state that keeps sources and results below topdir.
//
// Sources and the spec file are read from topdir itself, which matches the
// flat layout of a dist-git checkout.
func newBuildState(topdir string) *buildState {
	return &buildState{
		defines: map[string]string{
			"_topdir":    topdir,
			"_sourcedir": topdir,
			"_specdir":   topdir,
			"_builddir":  path.Join(topdir, "BUILD"),
			"_rpmdir":    path.Join(topdir, "RPMS"),
			"_srcrpmdir": path.Join(topdir, "SRPMS"),
		},
		macros:   map[string]string{},
		replaced: map[string]string{},
	}
}

// Returns a copy of the state with the package's macros overlaid.
//
// Intermediate bootstrap builds also get [specfile.BootstrapMacro].
func (s *buildState) resolve(pkg recipe.Package) *buildState {
	resolved := &buildState{
		defines:  maps.Clone(s.defines),
		macros:   make(map[string]string, len(s.macros)+len(pkg.Macros)+1),
		replaced: make(map[string]string, len(s.replaced)+len(pkg.ReplacedMacros)),
	}
	maps.Copy(resolved.macros, s.macros)
	maps.Copy(resolved.macros, pkg.Macros)
	maps.Copy(resolved.replaced, s.replaced)
	maps.Copy(resolved.replaced, pkg.ReplacedMacros)

	if pkg.IsBootstrap() {
		resolved.macros[specfile.BootstrapMacro] = "1"
	}
	return resolved
}

// Applies the spec file macros to the spec file at p.
func (s *buildState) edit(p string) error {
	return specfile.Edit(p, s.macros, s.replaced)
}

// Formats the --define arguments, sorted by macro name.
func (s *buildState) args() string {
	args := make([]string, 0, len(s.defines))
	for _, name := range slices.Sorted(maps.Keys(s.defines)) {
		args = append(args, "--define "+command.Quote(fmt.Sprintf("%s %s", name, s.defines[name])))
	}
	return strings.Join(args, " ")
}

// Returns the rpmbuild command line for the given mode and spec file.
func (s *buildState) rpmbuild(mode, spec string) string {
	return fmt.Sprintf("rpmbuild %s %s %s", mode, s.args(), command.Quote(spec))
}
