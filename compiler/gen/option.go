package gen

import (
	"errors"
	"log/slog"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

// Option configures the compiler.
type Option func(*Config) error

// WithStructure sets the implementation structure of generated classes.
func WithStructure(s Structure) Option {
	return func(c *Config) error {
		if s != BeanOnly && s != InterfaceAndImpl {
			return NewConfigError("Structure", s, "unsupported structure")
		}
		c.Structure = s
		return nil
	}
}

// WithRenderers sets the field rendering strategy factory.
func WithRenderers(r RendererFactory) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Renderers", nil, "renderer factory cannot be nil")
		}
		c.Renderers = r
		return nil
	}
}

// WithRootClass sets the supertype of every class without one.
// The name is a qualified type name such as "example.com/base.Object".
func WithRootClass(name string) Option {
	return func(c *Config) error {
		q, err := qualified("RootClass", name)
		if err != nil {
			return err
		}
		c.RootClass = q
		return nil
	}
}

// WithRootInterface sets an interface implemented by every class.
func WithRootInterface(name string) Option {
	return func(c *Config) error {
		q, err := qualified("RootInterface", name)
		if err != nil {
			return err
		}
		c.RootInterface = q
		return nil
	}
}

func qualified(option, name string) (*codemodel.Qual, error) {
	if name == "" {
		return nil, NewConfigError(option, nil, "type name cannot be empty")
	}
	ref := load.ParseExternalRef(name)
	if ref.Name == "" {
		return nil, NewConfigError(option, name, "missing type name after the package path")
	}
	return &codemodel.Qual{Path: ref.Path, Name: ref.Name}, nil
}

// WithSerializable enables serialization support for every class, tagged
// with the given version. A nil version adds the marker only.
func WithSerializable(version *int64) Option {
	return func(c *Config) error {
		c.Serializable = true
		c.SerialVersionUID = version
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithSink adds a diagnostics sink.
func WithSink(s Sink) Option {
	return func(c *Config) error {
		c.Sink = MultiSink(c.Sink, s)
		return nil
	}
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithHeader sets the file header comment.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithoutFeatures disables default features by name.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := FeatureByName(name); !ok {
				return NewConfigError("Disabled", name, "unknown feature")
			}
		}
		c.Disabled = append(c.Disabled, names...)
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
