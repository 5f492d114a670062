package recipe

import (
	"fmt"
	"regexp"
)

// A normalized package record.
//
// Packages are produced by [Recipe.Normalize] in recipe order, one per raw
// entry. BootstrapPosition is nil for the final (or only) build of a name
// and holds the 1-based bootstrap pass number otherwise.
type Package struct {
	Name              string
	BootstrapPosition *int
	Metadata
}

// Reports whether this occurrence is an intermediate bootstrap build.
func (p Package) IsBootstrap() bool {
	return p.BootstrapPosition != nil
}

// Reports whether the package applies to the target distribution.
//
// A package without a dist constraint applies everywhere, and so does any
// package when no target is given. Otherwise the constraint is a regular
// expression that must match at the beginning of the target: "fc2[56]"
// applies to "fc26" and "fc25", but not to "fc2".
func (p Package) AppliesTo(target string) (bool, error) {
	if target == "" || p.Dist == "" {
		return true, nil
	}
	re, err := regexp.Compile("^(?:" + p.Dist + ")")
	if err != nil {
		return false, fmt.Errorf("%w: package %s: %w", ErrInvalidPattern, p.Name, err)
	}
	return re.MatchString(target), nil
}

func (p Package) String() string {
	if p.BootstrapPosition != nil {
		return fmt.Sprintf("%s (bootstrap %d)", p.Name, *p.BootstrapPosition)
	}
	return p.Name
}
