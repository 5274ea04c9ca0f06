package gen

import (
	"log/slog"
	"slices"

	"github.com/syssam/beangen/compiler/codemodel"
)

// Structure selects how a class is split into exposed and implementation
// types.
type Structure uint8

const (
	// BeanOnly generates one struct per class.
	BeanOnly Structure = iota
	// InterfaceAndImpl generates an interface named after the class and a
	// struct named with the Impl suffix implementing it.
	InterfaceAndImpl
)

func (s Structure) String() string {
	if s == InterfaceAndImpl {
		return "interface"
	}
	return "bean"
}

// ParseStructure returns the structure with the given name ("bean" or
// "interface").
func ParseStructure(s string) (Structure, error) {
	switch s {
	case "", "bean":
		return BeanOnly, nil
	case "interface":
		return InterfaceAndImpl, nil
	default:
		return 0, NewConfigError("Structure", s, "unsupported structure; use bean or interface")
	}
}

// ImplSuffix is appended to implementation struct names under
// InterfaceAndImpl.
const ImplSuffix = "Impl"

// Config holds the compiler options. It is passed explicitly to Compile and
// never read from global state.
type Config struct {
	// Structure is the implementation structure of generated classes.
	Structure Structure

	// Renderers resolves field rendering strategies. Required.
	Renderers RendererFactory

	// RootClass is the supertype of classes that have none.
	RootClass *codemodel.Qual

	// RootInterface is implemented by every exposed class type.
	RootInterface *codemodel.Qual

	// Serializable enables serialization support for every class.
	Serializable bool

	// SerialVersionUID is the default version tag of serializable classes.
	SerialVersionUID *int64

	// Logger receives phase and diagnostic logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Sink receives every diagnostic in addition to the logger.
	Sink Sink

	// Target is the output directory of emitted files.
	Target string

	// Header is the comment written at the top of each emitted file.
	Header string

	// Features enabled on top of the default ones.
	Features []Feature

	// Disabled names default features that are switched off.
	Disabled []string
}

// FeatureEnabled reports whether the named feature is enabled, either
// explicitly or by default.
func (c *Config) FeatureEnabled(name string) bool {
	if slices.Contains(c.Disabled, name) {
		return false
	}
	for _, f := range c.Features {
		if f.Name == name {
			return true
		}
	}
	for _, f := range AllFeatures {
		if f.Name == name {
			return f.Default
		}
	}
	return false
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
