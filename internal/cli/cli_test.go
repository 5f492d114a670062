package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cruciblehq/rpmlb/internal/recipe"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func testRecipe(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", "recipe.yml"))
	require.NoError(t, err)
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "(local)\n", out)
}

func TestList(t *testing.T) {
	out, err := run(t, "list", testRecipe(t), "hello")
	require.NoError(t, err)
	require.Equal(t, "1 foo (bootstrap 1)\n2 bar [cmd]\n3 baz [dist=fc2[56]]\n4 foo\n", out)
}

func TestVerify(t *testing.T) {
	out, err := run(t, "verify", testRecipe(t), "hello")
	require.NoError(t, err)
	require.Equal(t, "hello: OK\n", out)

	out, err = run(t, "verify", testRecipe(t), "broken")
	require.ErrorIs(t, err, recipe.ErrMalformedFile)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "unknown-key")
	require.Contains(t, lines[1], "wrong-type")
}

func TestVerifyMissingCollection(t *testing.T) {
	_, err := run(t, "verify", testRecipe(t), "missing")
	require.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestRun(t *testing.T) {
	src := t.TempDir()
	for _, name := range []string{"foo", "bar", "baz"} {
		require.NoError(t, os.MkdirAll(filepath.Join(src, name), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(src, name, name+".spec"), []byte("Name: "+name+"\n"), 0o644))
	}
	workdir := filepath.Join(t.TempDir(), "work")

	_, err := run(t, "-q", "run",
		"--download", "local",
		"--source-directory", src,
		"--work-directory", workdir,
		"--dist", "el7",
		testRecipe(t), "hello",
	)
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(workdir, "1", "foo", "foo.spec"))
	require.FileExists(t, filepath.Join(workdir, "2", "bar", "built"))
	require.FileExists(t, filepath.Join(workdir, "4", "foo", "foo.spec"))

	// Skipped for its dist, but the package directory exists.
	require.DirExists(t, filepath.Join(workdir, "3", "baz"))
	require.NoFileExists(t, filepath.Join(workdir, "3", "baz", "baz.spec"))
}

func TestRunInvalidRecipe(t *testing.T) {
	workdir := filepath.Join(t.TempDir(), "work")
	_, err := run(t, "-q", "run", "--work-directory", workdir, testRecipe(t), "broken")

	var rerr *recipe.RecipeError
	require.ErrorAs(t, err, &rerr)
	require.Len(t, rerr.Violations, 2)
	require.NoDirExists(t, workdir)
}

func TestRunUnknownBackend(t *testing.T) {
	_, err := run(t, "run", "--build", "koji", testRecipe(t), "hello")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(config, []byte("log-format: json\nquiet: true\n"), 0o644))

	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), []string{"version"}, &stdout, &stderr, config)
	require.NoError(t, err)
	require.Equal(t, "(local)\n", stdout.String())
}

func TestYAMLResolverValues(t *testing.T) {
	tests := []struct {
		raw  any
		want any
	}{
		{raw: nil, want: nil},
		{raw: "rhpkg", want: "rhpkg"},
		{raw: 3, want: "3"},
		{raw: true, want: "true"},
		{raw: []any{"a", 1}, want: "a,1"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, configValue(tt.raw))
	}
}

func TestYAMLResolverInvalid(t *testing.T) {
	_, err := YAML(strings.NewReader("- not\n- a mapping\n"))
	require.Error(t, err)

	_, err = YAML(strings.NewReader(""))
	require.NoError(t, err)
}
