package recipe

import (
	"maps"

	"gopkg.in/yaml.v3"
)

// Discriminates the two forms of a raw package entry.
type EntryKind int

const (
	Bare      EntryKind = iota + 1 // A plain package name.
	Annotated                      // A package name with metadata.
)

func (k EntryKind) String() string {
	switch k {
	case Bare:
		return "bare"
	case Annotated:
		return "annotated"
	}
	return "invalid"
}

// Build instructions attached to an annotated package entry.
type Metadata struct {
	Macros         map[string]string // Macros added to the spec file.
	ReplacedMacros map[string]string // Macros whose existing definitions are replaced.
	Cmd            []string          // Commands run instead of the builder's own build.
	Dist           string            // Pattern restricting the distributions the package applies to.
}

func (m Metadata) clone() Metadata {
	return Metadata{
		Macros:         maps.Clone(m.Macros),
		ReplacedMacros: maps.Clone(m.ReplacedMacros),
		Cmd:            append([]string(nil), m.Cmd...),
		Dist:           m.Dist,
	}
}

// A raw package entry, parsed into a tagged union.
type Entry struct {
	Kind     EntryKind
	Name     string
	Metadata Metadata // Zero for bare entries.
}

// Parses the raw package entry at position i of the packages list.
//
// The node must be a non-empty string or a mapping with exactly one key
// whose value is a non-empty metadata mapping. Anything else fails with a
// [*PackageFormatError] describing the first problem found. Metadata is
// checked with the same rules as [Recipe.Validate].
func ParseEntry(n *yaml.Node, i int) (Entry, error) {
	n = resolve(n)

	c := &collector{}
	validateEntry(c, n, index(keyPackages, i))
	if len(c.violations) > 0 {
		return Entry{}, &PackageFormatError{Index: i, Violation: c.violations[0]}
	}

	if isString(n) {
		return Entry{Kind: Bare, Name: n.Value}, nil
	}

	p := pairs(n)[0]
	return Entry{
		Kind:     Annotated,
		Name:     p.key.Value,
		Metadata: decodeMetadata(p.value),
	}, nil
}

// Decodes a metadata mapping that has already passed validation.
func decodeMetadata(n *yaml.Node) Metadata {
	var m Metadata
	for _, p := range pairs(n) {
		switch p.key.Value {
		case keyMacros:
			m.Macros = decodeMacros(p.value)
		case keyReplacedMacros:
			m.ReplacedMacros = decodeMacros(p.value)
		case keyCmd:
			m.Cmd = decodeCmd(p.value)
		case keyDist:
			m.Dist = p.value.Value
		}
	}
	return m
}

func decodeMacros(n *yaml.Node) map[string]string {
	out := make(map[string]string, len(n.Content)/2)
	for _, p := range pairs(n) {
		out[p.key.Value] = p.value.Value
	}
	return out
}

func decodeCmd(n *yaml.Node) []string {
	if isString(n) {
		return []string{n.Value}
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		out = append(out, resolve(item).Value)
	}
	return out
}
