// Package codemodel is the in-memory object model the bean compiler
// produces: packages of defined struct, interface and enum types with their
// fields, methods, constants and annotations. It knows nothing about any
// particular textual rendering; see compiler/gen/emit for the Go renderer.
package codemodel

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// ErrTypeExists is matched by ExistsError.
var ErrTypeExists = errors.New("codemodel: type already exists")

// ExistsError is returned when a type name is already taken in a package.
type ExistsError struct {
	Existing *Defined
}

// Error implements the error interface.
func (e *ExistsError) Error() string {
	return fmt.Sprintf("codemodel: type %s already exists", e.Existing.FullName())
}

// Is reports whether the target is ErrTypeExists.
func (e *ExistsError) Is(target error) bool { return target == ErrTypeExists }

// Model is the root of the object model. Defined types are stored in an
// arena and keep their index for the lifetime of the model.
type Model struct {
	packages map[string]*Package
	types    []*Defined
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{packages: make(map[string]*Package)}
}

// Package returns the package with the given import path, creating it on
// first use.
func (m *Model) Package(importPath string) *Package {
	if p, ok := m.packages[importPath]; ok {
		return p
	}
	p := &Package{
		Path:   importPath,
		model:  m,
		byName: make(map[string]*Defined),
	}
	m.packages[importPath] = p
	return p
}

// Packages returns all packages ordered by import path.
func (m *Model) Packages() []*Package {
	pkgs := make([]*Package, 0, len(m.packages))
	for _, p := range m.packages {
		pkgs = append(pkgs, p)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Path < pkgs[j].Path })
	return pkgs
}

// Types returns every defined type in creation order.
func (m *Model) Types() []*Defined { return m.types }

// Type returns the defined type with the given arena index.
func (m *Model) Type(id int) (*Defined, bool) {
	if id < 0 || id >= len(m.types) {
		return nil, false
	}
	return m.types[id], true
}

// Package is a Go package of generated definitions.
type Package struct {
	// Path is the import path.
	Path string
	// Doc is the package documentation.
	Doc string
	// Funcs are package-level functions, such as object factories.
	Funcs []*Method

	model  *Model
	types  []*Defined
	byName map[string]*Defined
}

// Name returns the package name derived from the last path element.
func (p *Package) Name() string {
	base := path.Base(p.Path)
	if base == "." || base == "/" || base == "" {
		return "main"
	}
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return -1
	}, base)
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = "_" + name
	}
	return name
}

// Define creates a package-level type. If the name is taken, the existing
// type is returned together with an *ExistsError.
func (p *Package) Define(name string, kind Kind) (*Defined, error) {
	return p.define(nil, name, kind)
}

// Nested creates a type declared inside outer.
func (p *Package) Nested(outer *Defined, name string, kind Kind) (*Defined, error) {
	return p.define(outer, name, kind)
}

func (p *Package) define(outer *Defined, name string, kind Kind) (*Defined, error) {
	key := name
	if outer != nil {
		key = outer.LocalName() + "." + name
	}
	if d, ok := p.byName[key]; ok {
		return d, &ExistsError{Existing: d}
	}
	d := &Defined{
		id:    len(p.model.types),
		pkg:   p,
		Outer: outer,
		Name:  name,
		Kind:  kind,
	}
	p.model.types = append(p.model.types, d)
	p.types = append(p.types, d)
	p.byName[key] = d
	return d, nil
}

// Lookup returns the type with the given local name ("Outer.Inner" for
// nested types).
func (p *Package) Lookup(name string) (*Defined, bool) {
	d, ok := p.byName[name]
	return d, ok
}

// Types returns the types of the package in creation order.
func (p *Package) Types() []*Defined { return p.types }

// Func adds a package-level function.
func (p *Package) Func(name string, results ...Ref) *Method {
	m := &Method{Name: name, Results: results, Static: true}
	p.Funcs = append(p.Funcs, m)
	return m
}

// Kind is the kind of a defined type.
type Kind uint8

// Defined type kinds.
const (
	KindStruct Kind = iota
	KindInterface
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	default:
		return "struct"
	}
}

// Defined is a type declared by the generated code.
type Defined struct {
	Annotatable

	id  int
	pkg *Package

	// Outer is the enclosing type of a nested declaration.
	Outer *Defined
	// Name is the short name.
	Name string
	Kind Kind
	Doc  string
	// Extends is the supertype: an embedded struct for structs,
	// an embedded interface for interfaces.
	Extends Ref
	// Implements lists the interfaces the type satisfies.
	Implements []Ref
	// Underlying is the base type of an enum.
	Underlying Ref
	Fields     []*Field
	Methods    []*Method
	Constants  []*EnumConstant
	// Hidden types exist for reference only and are not rendered.
	Hidden bool
}

// ID returns the arena index of the type.
func (d *Defined) ID() int { return d.id }

// Package returns the declaring package.
func (d *Defined) Package() *Package { return d.pkg }

// LocalName returns the name relative to the package, e.g. "Outer.Inner".
func (d *Defined) LocalName() string {
	if d.Outer == nil {
		return d.Name
	}
	return d.Outer.LocalName() + "." + d.Name
}

// FlatName returns the Go identifier of the type; nested names are
// concatenated since Go has no nested declarations.
func (d *Defined) FlatName() string {
	if d.Outer == nil {
		return d.Name
	}
	return d.Outer.FlatName() + d.Name
}

// FullName returns the qualified name.
func (d *Defined) FullName() string {
	if d.pkg == nil || d.pkg.Path == "" {
		return d.LocalName()
	}
	return d.pkg.Path + "." + d.LocalName()
}

func (d *Defined) String() string { return d.FullName() }

func (*Defined) ref() {}

// HasSupertype reports whether a non-trivial supertype is set.
func (d *Defined) HasSupertype() bool { return d.Extends != nil }

// Implement adds an interface to the implements set, once.
func (d *Defined) Implement(r Ref) {
	for _, i := range d.Implements {
		if i.String() == r.String() {
			return
		}
	}
	d.Implements = append(d.Implements, r)
}

// Field declares a field.
func (d *Defined) Field(name string, typ Ref) *Field {
	f := &Field{Name: name, Type: typ, owner: d}
	d.Fields = append(d.Fields, f)
	return f
}

// LookupField returns the first field with the given name.
func (d *Defined) LookupField(name string) (*Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Method declares a method.
func (d *Defined) Method(name string, results ...Ref) *Method {
	m := &Method{Name: name, Results: results, owner: d}
	d.Methods = append(d.Methods, m)
	return m
}

// RemoveMethod removes m from the methods of d. It reports whether m was
// declared on d.
func (d *Defined) RemoveMethod(m *Method) bool {
	i := slices.Index(d.Methods, m)
	if i < 0 {
		return false
	}
	d.Methods = slices.Delete(d.Methods, i, i+1)
	m.owner = nil
	return true
}

// LookupMethod returns the first method with the given name.
func (d *Defined) LookupMethod(name string) (*Method, bool) {
	for _, m := range d.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// EnumConstant declares an enum constant. Names are not checked for
// uniqueness.
func (d *Defined) EnumConstant(name string) *EnumConstant {
	c := &EnumConstant{Name: name, owner: d}
	d.Constants = append(d.Constants, c)
	return c
}

// Field is a field of a defined type.
type Field struct {
	Annotatable

	Name string
	Type Ref
	Doc  string
	// Const marks a constant with the fixed Value.
	Const bool
	Value any

	owner *Defined
}

// Owner returns the declaring type.
func (f *Field) Owner() *Defined { return f.owner }

// Param is a method parameter.
type Param struct {
	Name string
	Type Ref
}

// Method is a method of a defined type, or a package-level function.
type Method struct {
	Name    string
	Params  []*Param
	Results []Ref
	Doc     string
	// Body is nil for abstract (interface) methods.
	Body Body
	// Static methods are rendered as package-level functions.
	Static bool

	owner *Defined
}

// Owner returns the declaring type, nil for package functions.
func (m *Method) Owner() *Defined { return m.owner }

// SameSignature reports whether a and b take and return the same types.
// Names are not compared.
func SameSignature(a, b *Method) bool {
	if len(a.Params) != len(b.Params) || len(a.Results) != len(b.Results) {
		return false
	}
	for i, p := range a.Params {
		if !SameType(p.Type, b.Params[i].Type) {
			return false
		}
	}
	for i, r := range a.Results {
		if !SameType(r, b.Results[i]) {
			return false
		}
	}
	return true
}

// Param appends a parameter and returns it.
func (m *Method) Param(name string, typ Ref) *Param {
	p := &Param{Name: name, Type: typ}
	m.Params = append(m.Params, p)
	return p
}

// EnumConstant is one constant of an enum type.
type EnumConstant struct {
	Annotatable

	Name string
	// Lexical is the original value of the constant.
	Lexical string
	// Value is the backing value, typed as the enum base kind.
	// It is nil when the enum recovers values from names.
	Value any
	Doc   string

	owner *Defined
}

// Owner returns the enum type.
func (c *EnumConstant) Owner() *Defined { return c.owner }
