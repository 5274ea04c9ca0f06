// Package field provides the field rendering strategies of the bean
// compiler. A strategy turns one property into storage on the
// implementation struct and accessors on the class.
package field

import (
	"fmt"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/load"
)

// Strategy keys, usable as property overrides.
const (
	// Default renders collections as lists and everything else as single
	// values.
	Default = "default"
	// Single renders a value field with a getter and a setter.
	Single = "single"
	// List renders a slice field with a getter returning the live slice.
	List = "list"
	// IsSet renders a single value tracked by pointer, with IsSet and
	// Unset accessors.
	IsSet = "isset"
)

// Registry returns a factory of the standard strategies, defaulting to
// the given key.
func Registry(def string) (*gen.Renderers, error) {
	r, err := gen.NewRenderers(Default, map[string]gen.FieldRenderer{
		Default: gen.FieldRendererFunc(defaultField),
		Single:  gen.FieldRendererFunc(single),
		List:    gen.FieldRendererFunc(list),
		IsSet:   gen.FieldRendererFunc(isSet),
	})
	if err != nil {
		return nil, err
	}
	if def != "" {
		if err := r.SetDefault(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is like Registry but panics on an unknown default key.
func MustRegistry(def string) *gen.Renderers {
	r, err := Registry(def)
	if err != nil {
		panic(err)
	}
	return r
}

func defaultField(cc *gen.ClassOutline, prop *load.Property) *gen.FieldOutline {
	if prop.Collection {
		return list(cc, prop)
	}
	return single(cc, prop)
}

func single(cc *gen.ClassOutline, prop *load.Property) *gen.FieldOutline {
	raw := cc.TypeOf(prop.Type)
	return value(cc, prop, raw, gen.ValueType(raw, prop.Optional))
}

func value(cc *gen.ClassOutline, prop *load.Property, raw, typ codemodel.Ref) *gen.FieldOutline {
	name := gen.Pascal(prop.Name)
	f := cc.Impl.Field(name, typ)
	f.Doc = prop.Doc
	w := cc.MethodWriter()
	get := w.Declare("Get"+name, typ).
		SetBody(codemodel.ReturnField{Field: f}).
		SetDoc(fmt.Sprintf("Get%s returns the value of the %s property.", name, prop.Name))
	param := gen.ParamName(name)
	set := w.Declare("Set"+name).
		Param(param, typ).
		SetBody(codemodel.SetField{Field: f, Param: param}).
		SetDoc(fmt.Sprintf("Set%s sets the value of the %s property.", name, prop.Name))
	return &gen.FieldOutline{
		Property: prop,
		Class:    cc,
		Field:    f,
		RawType:  raw,
		Getter:   get,
		Setter:   set,
	}
}

func list(cc *gen.ClassOutline, prop *load.Property) *gen.FieldOutline {
	raw := cc.TypeOf(prop.Type)
	typ := codemodel.Slice{Elem: gen.ElemType(raw)}
	name := gen.Plural(gen.Pascal(prop.Name))
	f := cc.Impl.Field(name, typ)
	f.Doc = prop.Doc
	get := cc.MethodWriter().
		Declare("Get"+name, codemodel.Pointer{Elem: typ}).
		SetBody(codemodel.LiveField{Field: f}).
		SetDoc(fmt.Sprintf("Get%s returns a pointer to the live %s list.\n\n"+
			"Modifications made through the pointer are visible on the object. "+
			"The list has no setter.", name, prop.Name))
	return &gen.FieldOutline{
		Property: prop,
		Class:    cc,
		Field:    f,
		RawType:  raw,
		Getter:   get,
	}
}

func isSet(cc *gen.ClassOutline, prop *load.Property) *gen.FieldOutline {
	if prop.Collection {
		fo := list(cc, prop)
		unset(cc, fo)
		return fo
	}
	raw := cc.TypeOf(prop.Type)
	fo := value(cc, prop, raw, gen.ValueType(raw, true))
	unset(cc, fo)
	return fo
}

// unset adds the IsSet and Unset accessors of a field.
func unset(cc *gen.ClassOutline, fo *gen.FieldOutline) {
	name := gen.Pascal(fo.Property.Name)
	if fo.Property.Collection {
		name = fo.Field.Name
	}
	w := cc.MethodWriter()
	fo.Extra = append(fo.Extra,
		w.Declare("IsSet"+name, codemodel.Bool).
			SetBody(codemodel.IsSetField{Field: fo.Field}).
			SetDoc(fmt.Sprintf("IsSet%s reports whether the %s property holds a value.", name, fo.Property.Name)),
		w.Declare("Unset"+name).
			SetBody(codemodel.UnsetField{Field: fo.Field}).
			SetDoc(fmt.Sprintf("Unset%s clears the %s property.", name, fo.Property.Name)),
	)
}
