package recipe

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Keys permitted in package metadata.
const (
	keyMacros         = "macros"
	keyReplacedMacros = "replaced_macros"
	keyCmd            = "cmd"
	keyDist           = "dist"
)

// Accumulates violations during a validation pass.
type collector struct {
	violations []Violation
}

func (c *collector) add(path string, kind Kind, n *yaml.Node, format string, args ...any) {
	c.violations = append(c.violations, Violation{
		Path:    path,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    line(n),
	})
}

// Validates the structure of the recipe.
//
// Every problem in the document is collected before returning, so a single
// call reports all of them. Returns a [*RecipeError] when any violation was
// found and nil otherwise.
func (r *Recipe) Validate() error {
	c := &collector{}
	if r.redefined != nil {
		c.add("", KindDuplicateKey, r.redefined, "collection %q is defined more than once", r.CollectionID)
	}
	validateRecipe(c, r.root)
	if len(c.violations) == 0 {
		return nil
	}
	return &RecipeError{CollectionID: r.CollectionID, Violations: c.violations}
}

func validateRecipe(c *collector, root *yaml.Node) {
	if isNull(root) || root.Kind != yaml.MappingNode {
		c.add("", KindWrongType, root, "recipe is a %s, want a mapping", describe(root))
		return
	}
	checkKeys(c, root, "")

	var hasPackages bool
	for _, p := range pairs(root) {
		switch p.key.Value {
		case keyName:
			validateName(c, p.value)
		case keyRequires:
			validateRequires(c, p.value)
		case keyPackages:
			hasPackages = true
			validatePackages(c, p.value)
		default:
			c.add(p.key.Value, KindUnknownKey, p.key, "unknown recipe key %q", p.key.Value)
		}
	}

	if !hasPackages {
		c.add(keyPackages, KindMissingRequired, root, "packages is required")
	}
}

func validateName(c *collector, n *yaml.Node) {
	switch {
	case isEmpty(n):
		c.add(keyName, KindEmptyValue, n, "name must not be empty")
	case !isString(n):
		c.add(keyName, KindWrongType, n, "name is a %s, want a string", describe(n))
	}
}

func validateRequires(c *collector, n *yaml.Node) {
	switch {
	case isEmpty(n):
		c.add(keyRequires, KindEmptyValue, n, "requires must not be empty")
		return
	case n.Kind != yaml.SequenceNode:
		c.add(keyRequires, KindWrongType, n, "requires is a %s, want a list", describe(n))
		return
	}
	for i, item := range n.Content {
		item = resolve(item)
		path := index(keyRequires, i)
		switch {
		case isEmpty(item):
			c.add(path, KindEmptyValue, item, "collection id must not be empty")
		case !isString(item):
			c.add(path, KindWrongType, item, "collection id is a %s, want a string", describe(item))
		}
	}
}

func validatePackages(c *collector, n *yaml.Node) {
	switch {
	case isEmpty(n):
		c.add(keyPackages, KindEmptyValue, n, "packages must not be empty")
		return
	case n.Kind != yaml.SequenceNode:
		c.add(keyPackages, KindWrongType, n, "packages is a %s, want a list", describe(n))
		return
	}
	for i, item := range n.Content {
		validateEntry(c, resolve(item), index(keyPackages, i))
	}
}

// Validates one raw package entry: a non-empty string, or a mapping with
// exactly one key whose value is a metadata mapping.
func validateEntry(c *collector, n *yaml.Node, path string) {
	switch {
	case isString(n):
		if n.Value == "" {
			c.add(path, KindEmptyValue, n, "package name must not be empty")
		}
	case isNull(n):
		c.add(path, KindEmptyValue, n, "package entry must not be empty")
	case n.Kind == yaml.MappingNode:
		entries := pairs(n)
		if len(entries) != 1 {
			c.add(path, KindWrongArity, n, "package mapping must have exactly one key, has %d", len(entries))
			return
		}
		name, meta := entries[0].key, entries[0].value
		if !isString(name) || name.Value == "" {
			c.add(path, KindWrongType, name, "package name is a %s, want a non-empty string", describe(name))
			return
		}
		validateMetadata(c, meta, field(path, name.Value))
	default:
		c.add(path, KindWrongType, n, "package entry is a %s, want a string or a single-key mapping", describe(n))
	}
}

func validateMetadata(c *collector, n *yaml.Node, path string) {
	switch {
	case isEmpty(n):
		c.add(path, KindEmptyValue, n, "package metadata must not be empty")
		return
	case n.Kind != yaml.MappingNode:
		c.add(path, KindWrongType, n, "package metadata is a %s, want a mapping", describe(n))
		return
	}
	checkKeys(c, n, path)

	for _, p := range pairs(n) {
		key := p.key.Value
		fpath := field(path, key)
		switch key {
		case keyMacros, keyReplacedMacros:
			validateMacros(c, p.value, fpath)
		case keyCmd:
			validateCmd(c, p.value, fpath)
		case keyDist:
			validateDist(c, p.value, fpath)
		default:
			c.add(fpath, KindUnknownKey, p.key, "unknown package key %q", key)
		}
	}
}

func validateMacros(c *collector, n *yaml.Node, path string) {
	switch {
	case isEmpty(n):
		c.add(path, KindEmptyValue, n, "macros must not be empty")
		return
	case n.Kind != yaml.MappingNode:
		c.add(path, KindWrongType, n, "macros is a %s, want a mapping", describe(n))
		return
	}
	checkKeys(c, n, path)
	for _, p := range pairs(n) {
		mpath := field(path, p.key.Value)
		switch {
		case p.key.Kind != yaml.ScalarNode || p.key.Value == "":
			c.add(mpath, KindWrongType, p.key, "macro name must be a non-empty scalar")
		case p.value == nil || p.value.Kind != yaml.ScalarNode || isNull(p.value):
			c.add(mpath, KindWrongType, p.value, "macro body is a %s, want a scalar", describe(p.value))
		}
	}
}

func validateCmd(c *collector, n *yaml.Node, path string) {
	switch {
	case isEmpty(n):
		c.add(path, KindEmptyValue, n, "cmd must not be empty")
	case isString(n):
	case n.Kind == yaml.SequenceNode:
		for i, item := range n.Content {
			item = resolve(item)
			ipath := index(path, i)
			switch {
			case isEmpty(item):
				c.add(ipath, KindEmptyValue, item, "command must not be empty")
			case !isString(item):
				c.add(ipath, KindWrongType, item, "command is a %s, want a string", describe(item))
			}
		}
	default:
		c.add(path, KindWrongType, n, "cmd is a %s, want a string or a list of strings", describe(n))
	}
}

func validateDist(c *collector, n *yaml.Node, path string) {
	switch {
	case isEmpty(n):
		c.add(path, KindEmptyValue, n, "dist must not be empty")
	case !isString(n):
		c.add(path, KindWrongType, n, "dist is a %s, want a string", describe(n))
	default:
		if _, err := regexp.Compile(n.Value); err != nil {
			c.add(path, KindInvalidPattern, n, "dist is not a valid regular expression: %v", err)
		}
	}
}
