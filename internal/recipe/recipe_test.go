package recipe

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const validRecipePath = "testdata/recipe.yml"

func TestLoad(t *testing.T) {
	r, err := Load(validRecipePath, "rh-ror50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Path != validRecipePath {
		t.Errorf("Path = %q, want %q", r.Path, validRecipePath)
	}
	if r.Name() != "Ruby on Rails 5.0" {
		t.Errorf("Name() = %q", r.Name())
	}
	if diff := cmp.Diff([]string{"rh-ruby23", "rh-nodejs4"}, r.Requires()); diff != "" {
		t.Errorf("Requires() mismatch (-want +got):\n%s", diff)
	}
	if r.PackageCount() != 4 {
		t.Errorf("PackageCount() = %d, want 4", r.PackageCount())
	}
}

func TestLoadRecipeNotFound(t *testing.T) {
	_, err := Load(validRecipePath, "dummy")
	if !errors.Is(err, ErrRecipeNotFound) {
		t.Fatalf("err = %v, want ErrRecipeNotFound", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"), "rh-ror50")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   string
		want error
	}{
		{name: "empty collection id", data: "a: {packages: [a]}", id: "", want: ErrInvalidArgument},
		{name: "empty document", data: "  \n", id: "a", want: ErrMalformedFile},
		{name: "top level list", data: "- a\n- b\n", id: "a", want: ErrMalformedFile},
		{name: "invalid yaml", data: "a: [", id: "a", want: ErrMalformedFile},
		{name: "absent collection", data: "a: {packages: [a]}", id: "b", want: ErrRecipeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.id)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load("", "a"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestParseFollowsAliases(t *testing.T) {
	data := `
base: &base
  packages: [a, b]
alias: *base
`
	r, err := Parse([]byte(data), "alias")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if r.PackageCount() != 2 {
		t.Fatalf("PackageCount() = %d, want 2", r.PackageCount())
	}
}
