// Package specfile edits RPM spec files.
//
// Builders that produce source RPMs adjust the macros of a package before
// building it. Added macros are prepended as %global definitions; replaced
// macros rewrite the existing %global or %define line of the same name.
//
// Example usage:
//
//	path, _ := specfile.Find(".")
//	data, _ := os.ReadFile(path)
//	edited := specfile.Apply(string(data), map[string]string{"scl": "rh-ror50"}, nil)
package specfile

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/cruciblehq/rpmlb/internal/paths"
)

// Macro defined for intermediate bootstrap builds.
const BootstrapMacro = "_with_bootstrap"

var (
	ErrNoSpecFile        = errors.New("no spec file found")
	ErrMultipleSpecFiles = errors.New("more than one spec file found")
)

// Matches a %global or %define line: indentation, keyword, name, value.
var definition = regexp.MustCompile(`^(\s*%(?:global|define)\s+)([A-Za-z_][A-Za-z0-9_]*)(\s+.*)?$`)

// Returns the path of the single *.spec file in dir.
func Find(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.spec"))
	if err != nil {
		return "", err
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w in %s", ErrNoSpecFile, dir)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%w in %s: %s", ErrMultipleSpecFiles, dir, strings.Join(matches, ", "))
}

// Returns content with the macros applied.
//
// Every line defining a replaced macro has its value substituted. Replaced
// macros that are not defined anywhere, and all added macros, are prepended
// as %global lines sorted by name. A %global line already present verbatim
// is not prepended again, so applying the same macros twice is a no-op.
func Apply(content string, macros, replaced map[string]string) string {
	found := map[string]bool{}

	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		body, eol := strings.CutSuffix(line, "\n")
		m := definition.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		value, ok := replaced[m[2]]
		if !ok {
			continue
		}
		found[m[2]] = true
		lines[i] = m[1] + m[2] + " " + value
		if eol {
			lines[i] += "\n"
		}
	}

	prepend := map[string]string{}
	for name, value := range macros {
		prepend[name] = value
	}
	for name, value := range replaced {
		if !found[name] {
			prepend[name] = value
		}
	}

	present := make(map[string]bool, len(lines))
	for _, line := range lines {
		present[strings.TrimSpace(line)] = true
	}

	var b strings.Builder
	for _, name := range slices.Sorted(maps.Keys(prepend)) {
		global := fmt.Sprintf("%%global %s %s", name, prepend[name])
		if !present[global] {
			b.WriteString(global + "\n")
		}
	}
	for _, line := range lines {
		b.WriteString(line)
	}
	return b.String()
}

// Applies the macros to the spec file at path in place.
func Edit(path string, macros, replaced map[string]string) error {
	if len(macros) == 0 && len(replaced) == 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(Apply(string(data), macros, replaced)), paths.DefaultFileMode)
}
