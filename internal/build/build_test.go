package build

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cruciblehq/rpmlb/internal/pipeline"
	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/cruciblehq/rpmlb/internal/work"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.Equal(t, []string{"container", "copr", "custom", "dummy", "mock"}, Names())
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			b, err := New(name)
			require.NoError(t, err)
			require.Equal(t, name, b.Name())
		})
	}

	_, err := New("koji")
	require.ErrorIs(t, err, ErrUnknownBuilder)
}

func TestDummy(t *testing.T) {
	require.NoError(t, (&Dummy{}).Build(context.Background(), recipe.Package{Name: "foo"}, pipeline.Options{}))
}

func TestRequiredOptions(t *testing.T) {
	ctx := context.Background()
	pkg := recipe.Package{Name: "foo"}

	require.ErrorIs(t, (&Mock{}).Build(ctx, pkg, pipeline.Options{}), pipeline.ErrMissingOption)
	require.ErrorIs(t, (&Copr{}).Build(ctx, pkg, pipeline.Options{}), pipeline.ErrMissingOption)
	require.ErrorIs(t, NewContainer().Before(ctx, nil, pipeline.Options{}), pipeline.ErrMissingOption)
}

// Installs executable scripts ahead of PATH.
func fakeTools(t *testing.T, scripts map[string]string) {
	t.Helper()
	bin := t.TempDir()
	for name, body := range scripts {
		require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte("#!/bin/sh\n"+body), 0o755))
	}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// Creates a package directory with a spec file and enters it.
func packageDir(t *testing.T, name string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".spec"), []byte("Name: "+name+"\n"), 0o644))
	t.Chdir(dir)
	return dir
}

const fakeRpmbuild = `echo "$@" > rpmbuild.args
mkdir -p SRPMS
touch SRPMS/foo-1.0-1.src.rpm
`

func TestMock(t *testing.T) {
	fakeTools(t, map[string]string{
		"rpmbuild": fakeRpmbuild,
		"mock":     `echo "$@" > mock.args` + "\n",
	})
	dir := packageDir(t, "foo")

	one := 1
	pkg := recipe.Package{Name: "foo", BootstrapPosition: &one}
	pkg.Macros = map[string]string{"scl": "rh-ror50"}

	err := (&Mock{}).Build(context.Background(), pkg, pipeline.Options{MockConfig: "rhscl-2.4-rh-ror50-el7-x86_64"})
	require.NoError(t, err)

	spec, err := os.ReadFile(filepath.Join(dir, "foo.spec"))
	require.NoError(t, err)
	require.Equal(t, "%global _with_bootstrap 1\n%global scl rh-ror50\nName: foo\n", string(spec))

	args, err := os.ReadFile(filepath.Join(dir, "rpmbuild.args"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(args), "-bs "), "rpmbuild args: %s", args)
	require.Contains(t, string(args), "_srcrpmdir "+filepath.Join(dir, "SRPMS"))

	args, err = os.ReadFile(filepath.Join(dir, "mock.args"))
	require.NoError(t, err)
	require.Equal(t, "-r rhscl-2.4-rh-ror50-el7-x86_64 --rebuild "+filepath.Join(dir, "SRPMS", "foo-1.0-1.src.rpm")+"\n", string(args))
}

func TestCopr(t *testing.T) {
	fakeTools(t, map[string]string{
		"rpmbuild": fakeRpmbuild,
		"copr-cli": `echo "$@" > copr.args` + "\n",
	})
	dir := packageDir(t, "foo")

	err := (&Copr{}).Build(context.Background(), recipe.Package{Name: "foo"}, pipeline.Options{CoprRepo: "user/rh-ror50"})
	require.NoError(t, err)

	args, err := os.ReadFile(filepath.Join(dir, "copr.args"))
	require.NoError(t, err)
	require.Equal(t, "build user/rh-ror50 "+filepath.Join(dir, "SRPMS", "foo-1.0-1.src.rpm")+"\n", string(args))
}

func TestMockNoSourceRPM(t *testing.T) {
	fakeTools(t, map[string]string{"rpmbuild": "exit 0\n", "mock": "exit 0\n"})
	packageDir(t, "foo")

	err := (&Mock{}).Build(context.Background(), recipe.Package{Name: "foo"}, pipeline.Options{MockConfig: "x"})
	require.ErrorIs(t, err, ErrNoSourceRPM)
}

func TestCustom(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "custom.yml")
	content := "before_build: touch \"$CUSTOM_DIR/before\"\n" +
		"build: touch built\n" +
		"after_build: touch \"$CUSTOM_DIR/after\"\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	pkgs := []recipe.Package{{Name: "a"}, {Name: "b"}}
	s, err := work.Open(pkgs, work.Options{Root: t.TempDir()})
	require.NoError(t, err)
	for n, pkg := range pkgs {
		require.NoError(t, os.MkdirAll(filepath.Join(s.Dir(n+1), pkg.Name), 0o755))
	}

	b, err := New("custom")
	require.NoError(t, err)
	opts := pipeline.Options{CustomFile: file}
	require.NoError(t, (&pipeline.Runner{}).Run(context.Background(), s, pipeline.BuildPhase(b), pipeline.ResumeFromPosition, opts))

	require.FileExists(t, filepath.Join(dir, "before"))
	require.FileExists(t, filepath.Join(dir, "after"))
	require.FileExists(t, filepath.Join(s.Dir(1), "a", "built"))
	require.FileExists(t, filepath.Join(s.Dir(2), "b", "built"))
}
