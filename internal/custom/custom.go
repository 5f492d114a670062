// Package custom runs user-supplied commands from a custom file.
//
// A custom file is a YAML mapping from hook names to a command line or a
// list of command lines:
//
//	before_download: mkdir -p ~/rpmbuild
//	download:
//	  - cp -r "$CUSTOM_DIR/$PKG" .
//	build: make -C "$PKG" rpm
//
// The custom downloader and builder run the hooks they know about; missing
// hooks are skipped. Two variables are exported to every command: PKG, the
// package name, and CUSTOM_DIR, the directory containing the custom file.
package custom

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cruciblehq/rpmlb/internal/command"
	"gopkg.in/yaml.v3"
)

// Hook names recognized by the custom backends.
const (
	BeforeDownload = "before_download"
	Download       = "download"
	AfterDownload  = "after_download"
	BeforeBuild    = "before_build"
	Build          = "build"
	AfterBuild     = "after_build"
)

var (
	ErrNoCustomFile  = errors.New("custom file is required")
	ErrInvalidCustom = errors.New("invalid custom file")
)

// A list of command lines decoded from a string or a list of strings.
type Commands []string

// Decodes a scalar string or a sequence of strings.
func (c *Commands) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*c = Commands{n.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := n.Decode(&list); err != nil {
			return err
		}
		*c = list
		return nil
	}
	return fmt.Errorf("line %d: commands must be a string or a list of strings", n.Line)
}

// A custom file, loaded on first use.
type File struct {
	path  string              // Absolute path of the file.
	dir   string              // Directory containing the file.
	hooks map[string]Commands // Decoded hooks, nil until loaded.
}

// Returns a custom file handle for path. The file is read lazily.
func Open(path string) (*File, error) {
	if path == "" {
		return nil, ErrNoCustomFile
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &File{path: abs, dir: filepath.Dir(abs)}, nil
}

// Returns the directory containing the custom file.
func (f *File) Dir() string {
	return f.dir
}

// Returns the commands of a hook, loading the file if needed.
//
// A hook present in the file with a null or empty value makes the whole
// file invalid.
func (f *File) Hook(name string) (Commands, error) {
	if err := f.load(); err != nil {
		return nil, err
	}
	return f.hooks[name], nil
}

// Runs the commands of a hook in the current working directory.
//
// pkg is exported as PKG when non-empty. A missing hook is not an error.
func (f *File) Run(ctx context.Context, r *command.Runner, hook, pkg string) error {
	cmds, err := f.Hook(hook)
	if err != nil {
		return err
	}
	if len(cmds) == 0 {
		return nil
	}

	env := map[string]string{"CUSTOM_DIR": f.dir}
	if pkg != "" {
		env["PKG"] = pkg
	}
	return r.RunAll(ctx, cmds, env)
}

func (f *File) load() error {
	if f.hooks != nil {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("read custom file: %w", err)
	}

	hooks := map[string]Commands{}
	if err := yaml.Unmarshal(data, &hooks); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidCustom, f.path, err)
	}
	for _, name := range slices.Sorted(maps.Keys(hooks)) {
		if len(hooks[name]) == 0 {
			return fmt.Errorf("%w: %s: hook %s has no commands", ErrInvalidCustom, f.path, name)
		}
	}
	f.hooks = hooks
	return nil
}
