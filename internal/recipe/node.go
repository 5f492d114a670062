package recipe

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Follows alias nodes to the node they point at.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// Returns the value node for key in a mapping node, or nil.
//
// A key defined more than once resolves to its last occurrence.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	var out *yaml.Node
	for _, p := range pairs(mapping) {
		if p.key.Value == key {
			out = p.value
		}
	}
	return out
}

// A key/value pair of a mapping node.
type pair struct {
	key   *yaml.Node
	value *yaml.Node
}

// Returns the key/value pairs of a mapping node in document order.
//
// Merge keys (<<) are expanded: the pairs of the merged mappings follow the
// explicit pairs, minus the keys the mapping already defines. When several
// mappings are merged, the earlier ones take precedence. Repeated explicit
// keys are all returned.
func pairs(mapping *yaml.Node) []pair {
	return expand(mapping, 0)
}

// Bounds merge expansion so that recursive aliases terminate.
const maxMergeDepth = 32

func expand(mapping *yaml.Node, depth int) []pair {
	if mapping == nil || mapping.Kind != yaml.MappingNode || depth > maxMergeDepth {
		return nil
	}

	out := make([]pair, 0, len(mapping.Content)/2)
	var merged []*yaml.Node
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := resolve(mapping.Content[i]), resolve(mapping.Content[i+1])
		if isMerge(key) {
			merged = append(merged, mergeSources(value)...)
			continue
		}
		out = append(out, pair{key: key, value: value})
	}
	if len(merged) == 0 {
		return out
	}

	seen := make(map[string]bool, len(out))
	for _, p := range out {
		seen[p.key.Value] = true
	}
	for _, src := range merged {
		for _, p := range expand(src, depth+1) {
			if !seen[p.key.Value] {
				seen[p.key.Value] = true
				out = append(out, p)
			}
		}
	}
	return out
}

func isMerge(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.Value == "<<" && n.ShortTag() == "!!merge"
}

// Returns the mappings named by a merge value: a mapping or a list of them.
// Anything else yields nil.
func mergeSources(n *yaml.Node) []*yaml.Node {
	switch {
	case n == nil:
		return nil
	case n.Kind == yaml.MappingNode:
		return []*yaml.Node{n}
	case n.Kind == yaml.SequenceNode:
		out := make([]*yaml.Node, 0, len(n.Content))
		for _, item := range n.Content {
			if item = resolve(item); item.Kind != yaml.MappingNode {
				return nil
			}
			out = append(out, item)
		}
		return out
	}
	return nil
}

// Reports keys a mapping defines more than once and merge values that are
// not mappings.
func checkKeys(c *collector, mapping *yaml.Node, path string) {
	seen := map[string]bool{}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := resolve(mapping.Content[i]), resolve(mapping.Content[i+1])
		if isMerge(key) {
			if mergeSources(value) == nil {
				c.add(field(path, key.Value), KindWrongType, value, "merge value is a %s, want a mapping or a list of mappings", describe(value))
			}
			continue
		}
		if seen[key.Value] {
			c.add(field(path, key.Value), KindDuplicateKey, key, "key %q is defined more than once", key.Value)
		}
		seen[key.Value] = true
	}
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func isString(n *yaml.Node) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

// Reports whether a node holds no value: null, "", {} or [].
func isEmpty(n *yaml.Node) bool {
	switch {
	case isNull(n):
		return true
	case n.Kind == yaml.ScalarNode:
		return n.ShortTag() == "!!str" && n.Value == ""
	case n.Kind == yaml.MappingNode, n.Kind == yaml.SequenceNode:
		return len(n.Content) == 0
	}
	return false
}

// Describes the type of a node for error messages.
func describe(n *yaml.Node) string {
	if isNull(n) {
		return "null"
	}
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "list"
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return "string"
		case "!!int":
			return "integer"
		case "!!float":
			return "float"
		case "!!bool":
			return "boolean"
		}
		return fmt.Sprintf("scalar %s", n.ShortTag())
	}
	return "unknown"
}

func line(n *yaml.Node) int {
	if n == nil {
		return 0
	}
	return n.Line
}

func field(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func index(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
