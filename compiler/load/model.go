// Package load holds the schema-derived model graph consumed by the bean
// compiler, and the loader that reads it from YAML or JSON documents.
package load

import (
	"strconv"
	"strings"
)

// QName represents a qualified name with namespace and local part.
type QName struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Local     string `json:"local" yaml:"local"`
}

// String returns the QName in {namespace}local format, or just local if no namespace.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// IsZero reports whether q is the zero value.
func (q QName) IsZero() bool {
	return q.Namespace == "" && q.Local == ""
}

// ParseQName parses the {namespace}local form produced by String.
func ParseQName(s string) QName {
	if strings.HasPrefix(s, "{") {
		if ns, local, ok := strings.Cut(s[1:], "}"); ok {
			return QName{Namespace: ns, Local: local}
		}
	}
	return QName{Local: s}
}

// ExternalRef names a type that lives outside the model graph,
// for example a hand-written base class or an adapter.
type ExternalRef struct {
	// Path is the import path of the package declaring the type.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Name is the type name.
	Name string `json:"name" yaml:"name"`
}

// String returns path.Name, or Name for unqualified references.
func (r ExternalRef) String() string {
	if r.Path == "" {
		return r.Name
	}
	return r.Path + "." + r.Name
}

// ParseExternalRef splits "path/to/pkg.Name" at the last dot.
func ParseExternalRef(s string) ExternalRef {
	i := strings.LastIndex(s, ".")
	if i < 0 || i < strings.LastIndex(s, "/") {
		return ExternalRef{Name: s}
	}
	return ExternalRef{Path: s[:i], Name: s[i+1:]}
}

// ParentKind identifies the kind of container a class or enum is declared in.
type ParentKind uint8

const (
	// ParentPackage means the declaration lives directly in its package.
	ParentPackage ParentKind = iota
	// ParentClass means the declaration is nested in another class.
	ParentClass
	// ParentElement means the declaration is nested in a standalone element wrapper.
	ParentElement
)

// Parent is the container of a class or enum. Exactly one of the
// members matching Kind is set.
type Parent struct {
	Kind    ParentKind
	Class   *Class
	Element *Element
}

// PackageParent returns the package-level container.
func PackageParent() Parent { return Parent{Kind: ParentPackage} }

// ClassParent returns a container nesting the declaration in c.
func ClassParent(c *Class) Parent { return Parent{Kind: ParentClass, Class: c} }

// ElementParent returns a container nesting the declaration in e.
func ElementParent(e *Element) Parent { return Parent{Kind: ParentElement, Element: e} }

// Class is one bean of the model graph. Identity is pointer identity.
type Class struct {
	// Name is the short name of the generated type.
	Name string
	// Package is the import path of the package the class belongs to.
	Package string
	// Parent is the container the class is declared in.
	Parent Parent
	// TypeName is the schema type name, nil for anonymous types.
	TypeName *QName
	// ElementName is set when the class is bound to a global element.
	ElementName *QName
	// Base is the declared superclass inside the graph.
	Base *Class
	// BaseRef is a superclass outside the graph. Base and BaseRef are exclusive.
	BaseRef *ExternalRef
	// Properties in declaration order.
	Properties []*Property
	// Ordered requires properties to be emitted in Index order.
	Ordered bool
	// Serializable opts the class into serialization support.
	Serializable bool
	// SerialVersion overrides the configured version tag.
	SerialVersion *int64
	// AttributeWildcard indicates the type accepts any attribute.
	AttributeWildcard bool
	// ImplClass is the qualified name of a user-provided implementation.
	ImplClass string
	// Doc is free-text documentation.
	Doc string

	subclasses []*Class
}

// FullName returns the qualified name of the class.
func (c *Class) FullName() string {
	switch c.Parent.Kind {
	case ParentClass:
		if c.Parent.Class != nil {
			return c.Parent.Class.FullName() + "." + c.Name
		}
	case ParentElement:
		if c.Parent.Element != nil {
			return c.Parent.Element.FullName() + "." + c.Name
		}
	}
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// IsElement reports whether the class is bound to a global element.
func (c *Class) IsElement() bool { return c.ElementName != nil }

// Subclasses returns the direct subclasses recorded by Model.Link.
func (c *Class) Subclasses() []*Class { return c.subclasses }

// BaseKind is the primitive base of an enumeration.
type BaseKind uint8

// Enumeration base kinds.
const (
	BaseString BaseKind = iota
	BaseBoolean
	BaseByte
	BaseShort
	BaseInt
	BaseLong
	BaseUnsignedByte
	BaseUnsignedShort
	BaseUnsignedInt
	BaseUnsignedLong
	BaseFloat
	BaseDouble
	BaseQName
)

var baseKindNames = [...]string{
	BaseString:        "string",
	BaseBoolean:       "boolean",
	BaseByte:          "byte",
	BaseShort:         "short",
	BaseInt:           "int",
	BaseLong:          "long",
	BaseUnsignedByte:  "unsignedByte",
	BaseUnsignedShort: "unsignedShort",
	BaseUnsignedInt:   "unsignedInt",
	BaseUnsignedLong:  "unsignedLong",
	BaseFloat:         "float",
	BaseDouble:        "double",
	BaseQName:         "QName",
}

// String returns the schema name of the kind.
func (k BaseKind) String() string {
	if int(k) < len(baseKindNames) {
		return baseKindNames[k]
	}
	return "BaseKind(" + strconv.Itoa(int(k)) + ")"
}

// IsPrimitive reports whether values of the kind compare by value
// and convert to text directly.
func (k BaseKind) IsPrimitive() bool {
	return k != BaseString && k != BaseQName
}

// ParseBaseKind returns the kind with the given schema name.
func ParseBaseKind(s string) (BaseKind, bool) {
	if s == "" {
		return BaseString, true
	}
	for k, name := range baseKindNames {
		if name == s {
			return BaseKind(k), true
		}
	}
	return 0, false
}

// Enum is an enumeration leaf type.
type Enum struct {
	Name     string
	Package  string
	Parent   Parent
	TypeName *QName
	Base     BaseKind
	Members  []*EnumMember
	Doc      string
}

// FullName returns the qualified name of the enum.
func (e *Enum) FullName() string {
	if e.Parent.Kind == ParentClass && e.Parent.Class != nil {
		return e.Parent.Class.FullName() + "." + e.Name
	}
	if e.Package == "" {
		return e.Name
	}
	return e.Package + "." + e.Name
}

// EnumMember is one constant of an enumeration.
type EnumMember struct {
	// Name is the identifier of the generated constant.
	Name string
	// Lexical is the value as it appears in documents.
	Lexical string
	Doc     string
}

// Element is a schema element. It either wraps a class, or stands
// alone and gets its own generated wrapper holding Content.
type Element struct {
	Name    QName
	Package string
	Parent  Parent
	// Class is the bean bound to this element, if any.
	Class *Class
	// Content is the value type of a standalone element.
	Content TypeRef
	// ClassName is the short name of the generated wrapper.
	ClassName string
	// Global marks top-level elements.
	Global bool
	Doc    string
}

// HasClass reports whether the element generates its own wrapper type.
func (e *Element) HasClass() bool { return e.Class == nil && e.ClassName != "" }

// FullName returns the qualified name of the element wrapper.
func (e *Element) FullName() string {
	name := e.ClassName
	if name == "" {
		name = e.Name.Local
	}
	if e.Package == "" {
		return name
	}
	return e.Package + "." + name
}

// PropertyKind is the schema construct a property was derived from.
type PropertyKind uint8

// Property kinds.
const (
	KindElement PropertyKind = iota
	KindAttribute
	KindReference
	KindWildcard
)

func (k PropertyKind) String() string {
	switch k {
	case KindAttribute:
		return "attribute"
	case KindReference:
		return "reference"
	case KindWildcard:
		return "wildcard"
	default:
		return "element"
	}
}

// IDKind marks identity properties.
type IDKind uint8

// Identity kinds.
const (
	IDNone IDKind = iota
	ID
	IDRef
)

func (k IDKind) String() string {
	switch k {
	case ID:
		return "ID"
	case IDRef:
		return "IDREF"
	default:
		return "none"
	}
}

// Adapter describes a value adapter attached to a property.
type Adapter struct {
	// Type is the adapter implementation.
	Type ExternalRef
	// AttachmentRef marks the swaRef adapter, bound by attachment reference
	// instead of a generic adapter.
	AttachmentRef bool
}

// TypeRef points at the type of a property. Exactly one member is set.
type TypeRef struct {
	Class    *Class
	Enum     *Enum
	Builtin  string
	External *ExternalRef
}

// IsZero reports whether no type is referenced.
func (r TypeRef) IsZero() bool {
	return r.Class == nil && r.Enum == nil && r.Builtin == "" && r.External == nil
}

// String returns a human readable form of the reference.
func (r TypeRef) String() string {
	switch {
	case r.Class != nil:
		return r.Class.FullName()
	case r.Enum != nil:
		return r.Enum.FullName()
	case r.External != nil:
		return r.External.String()
	default:
		return r.Builtin
	}
}

// Property is one property of a class.
type Property struct {
	Name       string
	Kind       PropertyKind
	Type       TypeRef
	Collection bool
	Optional   bool
	Adapter    *Adapter
	ID         IDKind
	// MimeType is the expected content type hint.
	MimeType string
	// Strategy is an explicit field rendering override.
	Strategy string
	// Index is the position in the owning class' declared order.
	Index int
	// Dummy marks placeholder reference properties.
	Dummy bool
	Doc   string
}

// Model is the read-only input graph of a compile.
type Model struct {
	classes  []*Class
	enums    []*Enum
	elements []*Element
	owners   map[*Property]*Class
}

// NewModel builds a model and links it.
func NewModel(classes []*Class, enums []*Enum, elements []*Element) *Model {
	m := &Model{classes: classes, enums: enums, elements: elements}
	m.Link()
	return m
}

// Link computes derived navigation: subclass back references
// and the property owner index. It is idempotent.
func (m *Model) Link() {
	m.owners = make(map[*Property]*Class)
	for _, c := range m.classes {
		c.subclasses = nil
	}
	for _, c := range m.classes {
		if c.Base != nil {
			c.Base.subclasses = append(c.Base.subclasses, c)
		}
		for _, p := range c.Properties {
			m.owners[p] = c
		}
	}
}

// Classes returns all classes in declaration order.
func (m *Model) Classes() []*Class { return m.classes }

// Enums returns all enumerations in declaration order.
func (m *Model) Enums() []*Enum { return m.enums }

// Elements returns all elements in declaration order.
func (m *Model) Elements() []*Element { return m.elements }

// GlobalElements returns the top-level elements.
func (m *Model) GlobalElements() []*Element {
	var global []*Element
	for _, e := range m.elements {
		if e.Global {
			global = append(global, e)
		}
	}
	return global
}

// Owner returns the class declaring p.
func (m *Model) Owner(p *Property) (*Class, bool) {
	c, ok := m.owners[p]
	return c, ok
}
