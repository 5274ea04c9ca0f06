package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		s, err := LoadSettings(filepath.Join(t.TempDir(), DefaultSettingsFile))
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("Valid", func(t *testing.T) {
		path := writeFile(t, DefaultSettingsFile, `
output: out
base: example.com/po
structure: interface
strategy: isset
rootClass: example.com/base.Object
serializable:
  version: 3
features: [manifest]
disable: [seealso]
workers: 4
`)
		s, err := LoadSettings(path)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "out", s.Output)
		assert.Equal(t, "example.com/po", s.Base)
		assert.Equal(t, "interface", s.Structure)
		assert.Equal(t, "isset", s.Strategy)
		require.NotNil(t, s.Serializable)
		require.NotNil(t, s.Serializable.Version)
		assert.Equal(t, int64(3), *s.Serializable.Version)
		assert.Equal(t, []string{"manifest"}, s.Features)
		assert.Equal(t, 4, s.Workers)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := LoadSettings(writeFile(t, DefaultSettingsFile, "output: [unclosed"))
		assert.Error(t, err)
	})
}

func TestSettingsOptions(t *testing.T) {
	var nilSettings *Settings
	opts, err := nilSettings.Options()
	require.NoError(t, err)
	assert.Nil(t, opts)

	version := int64(3)
	s := &Settings{
		Structure:     "interface",
		Header:        "// custom",
		RootClass:     "example.com/base.Object",
		RootInterface: "example.com/base.Bean",
		Serializable:  &Serialization{Version: &version},
		Features:      []string{"manifest"},
		Disable:       []string{"seealso"},
	}
	opts, err = s.Options()
	require.NoError(t, err)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	assert.Equal(t, gen.InterfaceAndImpl, cfg.Structure)
	assert.Equal(t, "// custom", cfg.Header)
	assert.Equal(t, &codemodel.Qual{Path: "example.com/base", Name: "Object"}, cfg.RootClass)
	assert.Equal(t, &codemodel.Qual{Path: "example.com/base", Name: "Bean"}, cfg.RootInterface)
	assert.True(t, cfg.Serializable)
	assert.Equal(t, &version, cfg.SerialVersionUID)
	assert.True(t, cfg.FeatureEnabled("manifest"))
	assert.False(t, cfg.FeatureEnabled("seealso"))

	_, err = (&Settings{Structure: "class"}).Options()
	assert.True(t, gen.IsConfigError(err))

	opts, err = (&Settings{Features: []string{"nope"}}).Options()
	require.NoError(t, err)
	_, err = gen.NewConfig(opts...)
	assert.True(t, gen.IsConfigError(err))
}
