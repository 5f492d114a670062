// Package recipe loads, validates and normalizes build recipes.
//
// A recipe file is a YAML mapping from collection identifiers to recipe
// objects. Each recipe lists the packages of the collection in build order:
//
//	rh-ror50:
//	  name: Ruby on Rails 5.0
//	  requires: [rh-ruby23]
//	  packages:
//	    - rh-ror50
//	    - rubygem-rack:
//	        macros:
//	          _with_doc: 0
//	        dist: el7
//	    - rh-ror50
//
// Validation is batch: [Recipe.Validate] reports every problem in the
// document at once as a [RecipeError]. Normalization turns the raw entries
// into [Package] values, preserving order and duplicates. A package name
// listed k times is built k times; all but the last occurrence are bootstrap
// passes and carry a 1-based bootstrap position.
//
// Example usage:
//
//	r, err := recipe.Load("ror.yml", "rh-ror50")
//	if err != nil {
//	    return err
//	}
//	if err := r.Validate(); err != nil {
//	    return err
//	}
//	packages, err := r.Normalize()
//	if err != nil {
//	    return err
//	}
package recipe
