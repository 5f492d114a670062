package recipe

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrMalformedFile   = errors.New("malformed recipe file")
	ErrNoPackages      = errors.New("recipe has no package list")
	ErrInvalidPattern  = errors.New("invalid dist pattern")
)

// Classifies a structural problem found in a recipe.
type Kind string

const (
	KindMissingRequired Kind = "missing-required"
	KindEmptyValue      Kind = "empty-value"
	KindWrongType       Kind = "wrong-type"
	KindUnknownKey      Kind = "unknown-key"
	KindWrongArity      Kind = "wrong-arity"
	KindInvalidPattern  Kind = "invalid-pattern"
	KindDuplicateKey    Kind = "duplicate-key"
)

// A single structural problem in a recipe.
type Violation struct {
	Path    string // Field path, e.g. "packages[2].rubygem-rack.dist".
	Kind    Kind   // Kind of violation.
	Message string // Human readable detail.
	Line    int    // Line in the recipe file, 0 when unknown.
}

func (v Violation) String() string {
	path := v.Path
	if path == "" {
		path = "(recipe)"
	}
	if v.Line > 0 {
		return fmt.Sprintf("%s (line %d): %s: %s", path, v.Line, v.Kind, v.Message)
	}
	return fmt.Sprintf("%s: %s: %s", path, v.Kind, v.Message)
}

// Aggregate of every violation found in one validation pass.
type RecipeError struct {
	CollectionID string      // Collection the recipe was selected with.
	Violations   []Violation // All violations, in document order.
}

func (e *RecipeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "recipe %s is invalid (%d problems)", e.CollectionID, len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  - ")
		b.WriteString(v.String())
	}
	return b.String()
}

// Returns the violations of the given kind.
func (e *RecipeError) Of(kind Kind) []Violation {
	var out []Violation
	for _, v := range e.Violations {
		if v.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// Reports a raw package entry that cannot be normalized.
type PackageFormatError struct {
	Index     int       // Zero-based position in the packages list.
	Violation Violation // First problem found in the entry.
}

func (e *PackageFormatError) Error() string {
	return fmt.Sprintf("package entry %d is invalid: %s", e.Index+1, e.Violation)
}
