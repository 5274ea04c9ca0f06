package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen"
	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/gen/emit"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// noConfig points --config at a file that does not exist, so that a
// beangen.yaml in the working directory is never picked up.
func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), DefaultSettingsFile)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "beangen "+beangen.Version+"\n", out)
}

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check", "testdata/po.yaml", "--config", noConfig(t))
	require.NoError(t, err)
	assert.Equal(t, "example.com/po: 3 classes, 1 enums, 1 elements\n", out)
}

func TestCheckDiagnostics(t *testing.T) {
	model := writeFile(t, "dup.yaml", `
enums:
  - name: Dup
    package: example.com/p
    members:
      - {name: A, value: a}
      - {name: A, value: b}
`)
	out, _, err := run(t, "check", model, "--config", noConfig(t))
	require.Error(t, err)
	assert.True(t, gen.IsCompileError(err))
	assert.Contains(t, out, `example.com/p.Dup: error: two enum constants are named "A"`)
	assert.Contains(t, out, "example.com/p: 0 classes, 1 enums, 0 elements")
}

func TestCheckMissingModel(t *testing.T) {
	_, _, err := run(t, "check", filepath.Join(t.TempDir(), "missing.yaml"), "--config", noConfig(t))
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	_, stderr, err := run(t, "generate", "testdata/po.yaml",
		"-o", dir,
		"--base", "example.com/po",
		"--manifest",
		"--workers", "2",
		"--config", noConfig(t),
	)
	require.NoError(t, err)
	assert.Contains(t, stderr, "generated files")
	for _, name := range []string{"purchase_order_type.go", "us_address.go", "item.go", "us_state.go", "comment.go", "factory.go"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
	m, err := emit.ReadManifest(filepath.Join(dir, emit.ManifestName))
	require.NoError(t, err)
	p, ok := m.Package("example.com/po")
	require.True(t, ok)
	assert.Len(t, p.Files, 6)
}

func TestGenerateSettings(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, DefaultSettingsFile, "output: "+dir+"\nbase: example.com/po\nstructure: interface\n")

	_, _, err := run(t, "generate", "testdata/po.yaml", "--config", config)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "item_impl.go"))
	assert.NoError(t, err, "structure from the settings file")
	_, err = os.Stat(filepath.Join(dir, emit.ManifestName))
	assert.True(t, os.IsNotExist(err))

	// Flags win over the settings file.
	other := t.TempDir()
	_, _, err = run(t, "generate", "testdata/po.yaml", "--config", config, "-o", other, "--structure", "bean")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(other, "item.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(other, "item_impl.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateBadSettings(t *testing.T) {
	config := writeFile(t, DefaultSettingsFile, "structure: class\n")
	_, _, err := run(t, "generate", "testdata/po.yaml", "--config", config, "-o", t.TempDir())
	assert.True(t, gen.IsConfigError(err))

	_, _, err = run(t, "generate", "testdata/po.yaml", "--config", noConfig(t), "-o", t.TempDir(), "--strategy", "bogus")
	assert.True(t, gen.IsConfigError(err))
}
