package main

// settings.go: beangen configuration loaded from beangen.yaml.
//
// Every key mirrors a command line flag; flags given explicitly win over
// the file.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/beangen/compiler/gen"
)

// DefaultSettingsFile is read when --config is not given.
const DefaultSettingsFile = "beangen.yaml"

// Settings holds beangen configuration from beangen.yaml.
type Settings struct {
	// Output is the directory generated packages are written to.
	Output string `yaml:"output"`
	// Base is the import path prefix mapped onto Output.
	Base string `yaml:"base"`
	// Structure is "bean" or "interface".
	Structure string `yaml:"structure"`
	// Strategy is the default field strategy key.
	Strategy string `yaml:"strategy"`
	// Header replaces the generated file header.
	Header        string `yaml:"header"`
	RootClass     string `yaml:"rootClass"`
	RootInterface string `yaml:"rootInterface"`
	// Serializable enables serialization support for every class.
	Serializable *Serialization `yaml:"serializable"`
	// Features are enabled by name; Disable switches defaults off.
	Features []string `yaml:"features"`
	Disable  []string `yaml:"disable"`
	Workers  int      `yaml:"workers"`
}

// Serialization configures the serialization version tag.
type Serialization struct {
	Version *int64 `yaml:"version"`
}

// LoadSettings reads the settings file at path.
// Returns nil (not an error) if the file does not exist.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &s, nil
}

// Options maps the settings onto compiler options. Safe to call on a nil
// *Settings receiver.
func (s *Settings) Options() ([]gen.Option, error) {
	if s == nil {
		return nil, nil
	}
	var opts []gen.Option
	if s.Structure != "" {
		st, err := gen.ParseStructure(s.Structure)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithStructure(st))
	}
	if s.Header != "" {
		opts = append(opts, gen.WithHeader(s.Header))
	}
	if s.RootClass != "" {
		opts = append(opts, gen.WithRootClass(s.RootClass))
	}
	if s.RootInterface != "" {
		opts = append(opts, gen.WithRootInterface(s.RootInterface))
	}
	if s.Serializable != nil {
		opts = append(opts, gen.WithSerializable(s.Serializable.Version))
	}
	if len(s.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(s.Features...))
	}
	if len(s.Disable) > 0 {
		opts = append(opts, gen.WithoutFeatures(s.Disable...))
	}
	return opts, nil
}
