package recipe

// Normalizes the recipe's raw package entries into package records.
//
// The result has exactly one record per entry, in recipe order; duplicates
// are kept. Repeated names receive bootstrap positions as described by
// [Sequence]. Normalization does not depend on [Recipe.Validate]: malformed
// entries fail here with a [*PackageFormatError] whether or not the recipe
// was validated first.
func (r *Recipe) Normalize() ([]Package, error) {
	nodes, err := r.entries()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(nodes))
	names := make([]string, len(nodes))
	for i, n := range nodes {
		entry, err := ParseEntry(n, i)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
		names[i] = entry.Name
	}

	positions := Sequence(names)

	packages := make([]Package, len(entries))
	for i, entry := range entries {
		packages[i] = Package{
			Name:              entry.Name,
			BootstrapPosition: positions[i],
			Metadata:          entry.Metadata.clone(),
		}
	}
	return packages, nil
}

// Computes bootstrap positions for an ordered list of package names.
//
// A name occurring k > 1 times gets positions 1..k-1 on its first k-1
// occurrences and nil on the last one. Names occurring once get nil.
func Sequence(names []string) []*int {
	remaining := make(map[string]int, len(names))
	for _, name := range names {
		remaining[name]++
	}

	next := make(map[string]int, len(remaining))
	positions := make([]*int, len(names))
	for i, name := range names {
		remaining[name]--
		if remaining[name] == 0 {
			continue
		}
		next[name]++
		pos := next[name]
		positions[i] = &pos
	}
	return positions
}
