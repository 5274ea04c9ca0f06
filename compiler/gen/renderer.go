package gen

import (
	"sort"

	"github.com/syssam/beangen/compiler/load"
)

// FieldRenderer generates the storage and accessors of one property on a
// class. Implementations live in compiler/gen/field.
type FieldRenderer interface {
	Generate(cc *ClassOutline, prop *load.Property) *FieldOutline
}

// The FieldRendererFunc type is an adapter to allow the use of ordinary
// functions as FieldRenderer.
type FieldRendererFunc func(*ClassOutline, *load.Property) *FieldOutline

// Generate calls f(cc, prop).
func (f FieldRendererFunc) Generate(cc *ClassOutline, prop *load.Property) *FieldOutline {
	return f(cc, prop)
}

// RendererFactory resolves field rendering strategies.
type RendererFactory interface {
	// Default returns the strategy used when a property names none.
	Default() FieldRenderer
	// Lookup returns the strategy registered under key.
	Lookup(key string) (FieldRenderer, bool)
}

// Renderers is a RendererFactory backed by a map.
type Renderers struct {
	def string
	m   map[string]FieldRenderer
}

// NewRenderers returns a registry whose default strategy is the one
// registered under def. It returns a config error when nothing is
// registered under def.
func NewRenderers(def string, m map[string]FieldRenderer) (*Renderers, error) {
	r := &Renderers{m: make(map[string]FieldRenderer, len(m))}
	for k, v := range m {
		if v != nil {
			r.m[k] = v
		}
	}
	if err := r.SetDefault(def); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds or replaces a strategy. A nil strategy removes key
// unless it is the default.
func (r *Renderers) Register(key string, fr FieldRenderer) *Renderers {
	if fr == nil {
		if key != r.def {
			delete(r.m, key)
		}
		return r
	}
	r.m[key] = fr
	return r
}

// SetDefault changes the default strategy key. It returns a config error
// when nothing is registered under key.
func (r *Renderers) SetDefault(key string) error {
	if _, ok := r.m[key]; !ok {
		return NewConfigError("Renderers", key, "no field strategy registered under this key")
	}
	r.def = key
	return nil
}

// Default implements RendererFactory.
func (r *Renderers) Default() FieldRenderer { return r.m[r.def] }

// Lookup implements RendererFactory.
func (r *Renderers) Lookup(key string) (FieldRenderer, bool) {
	fr, ok := r.m[key]
	return fr, ok
}

// Keys returns the registered keys in sorted order.
func (r *Renderers) Keys() []string {
	keys := make([]string, 0, len(r.m))
	for k := range r.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
