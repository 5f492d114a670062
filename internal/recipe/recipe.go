package recipe

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Keys permitted at recipe level.
const (
	keyName     = "name"
	keyRequires = "requires"
	keyPackages = "packages"
)

// A recipe selected from a recipe file by its collection identifier.
//
// The recipe keeps the raw YAML tree of the selected collection so that
// validation can report field paths and line numbers. It is not modified
// after loading.
type Recipe struct {
	CollectionID string     // Key the recipe was selected with.
	Path         string     // File the recipe was loaded from, empty for in-memory recipes.
	root         *yaml.Node // Recipe object of the selected collection.
	redefined    *yaml.Node // Key of a repeated definition of the collection, if any.
}

// Loads the recipe for collectionID from the YAML file at path.
//
// Fails with [ErrRecipeNotFound] when the file has no such collection. The
// recipe is not validated; call [Recipe.Validate] before using it.
func Load(path, collectionID string) (*Recipe, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: recipe path is required", ErrInvalidArgument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe %s: %w", path, err)
	}

	r, err := Parse(data, collectionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.Path = path
	return r, nil
}

// Parses a recipe document and selects the recipe for collectionID.
//
// When the collection is defined more than once the last definition is
// selected and [Recipe.Validate] reports the repetition.
func Parse(data []byte, collectionID string) (*Recipe, error) {
	if collectionID == "" {
		return nil, fmt.Errorf("%w: collection id is required", ErrInvalidArgument)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: document is empty", ErrMalformedFile)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFile, err)
	}

	top := &doc
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = resolve(top.Content[0])
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is a %s, want a mapping of collections", ErrMalformedFile, describe(top))
	}

	var r *Recipe
	for _, p := range pairs(top) {
		if p.key.Value != collectionID {
			continue
		}
		if r == nil {
			r = &Recipe{CollectionID: collectionID}
		} else {
			r.redefined = p.key
		}
		r.root = p.value
	}
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, collectionID)
	}
	return r, nil
}

// Returns the display name of the recipe, or an empty string.
func (r *Recipe) Name() string {
	if n := lookup(r.root, keyName); isString(n) {
		return n.Value
	}
	return ""
}

// Returns the collections this recipe requires, in declaration order.
func (r *Recipe) Requires() []string {
	n := lookup(r.root, keyRequires)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	out := make([]string, 0, len(n.Content))
	for _, item := range n.Content {
		if item = resolve(item); isString(item) {
			out = append(out, item.Value)
		}
	}
	return out
}

// Returns the number of raw package entries in the recipe.
//
// Duplicated names count once per occurrence, so the result is also the
// number of build steps and the size used for the working directory tree.
func (r *Recipe) PackageCount() int {
	n := lookup(r.root, keyPackages)
	if n == nil || n.Kind != yaml.SequenceNode {
		return 0
	}
	return len(n.Content)
}

// Returns the raw package entry nodes, or an error when the recipe has no
// package list.
func (r *Recipe) entries() ([]*yaml.Node, error) {
	n := lookup(r.root, keyPackages)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: %s", ErrNoPackages, r.CollectionID)
	}
	out := make([]*yaml.Node, len(n.Content))
	for i, item := range n.Content {
		out[i] = resolve(item)
	}
	return out, nil
}
