package gen

import (
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

// Annotation names placed on the code model. The emitter maps them onto
// struct tags and directive comments.
const (
	// AnnotationType carries the schema type name of a class or enum
	// (params: name, namespace, propOrder).
	AnnotationType = "type"
	// AnnotationRootElement marks a type bound to a global element
	// (params: name, namespace).
	AnnotationRootElement = "root"
	// AnnotationSeeAlso lists the direct subclasses of a class (param: value).
	AnnotationSeeAlso = "seealso"
	// AnnotationBinding carries the document name and kind of a field
	// (params: name, kind).
	AnnotationBinding = "binding"
	// AnnotationAdapter names the value adapter of a field (param: value).
	AnnotationAdapter = "adapter"
	// AnnotationAttachmentRef marks an attachment reference field.
	AnnotationAttachmentRef = "attachmentref"
	// AnnotationID marks an identifier field.
	AnnotationID = "id"
	// AnnotationIDRef marks a field referencing an identifier.
	AnnotationIDRef = "idref"
	// AnnotationMimeType carries the expected content type (param: value).
	AnnotationMimeType = "mimetype"
	// AnnotationAnyAttribute marks the attribute wildcard map.
	AnnotationAnyAttribute = "anyattribute"
	// AnnotationEnum carries the base kind of an enum (param: value).
	AnnotationEnum = "enum"
	// AnnotationEnumValue carries the lexical value of a constant whose
	// identifier differs from it (param: value).
	AnnotationEnumValue = "enumvalue"
	// AnnotationSerializable marks a serializable class.
	AnnotationSerializable = "serializable"
)

// SerializableRef is the interface implemented by classes that carry a
// serialization version tag.
var SerializableRef = codemodel.Qual{Path: "github.com/syssam/beangen", Name: "Serializable"}

type slotState uint8

const (
	stateReserved slotState = iota
	stateSkeleton
	stateResolving
	stateResolved
	stateFilling
	stateFilled
)

// Outline is the result of a compile: the code model plus the outlines
// linking every input node to its generated definitions.
type Outline struct {
	cfg       *Config
	model     *load.Model
	code      *codemodel.Model
	log       *slog.Logger
	sink      Sink
	collector Collector

	classes    []*ClassOutline
	classIndex map[*load.Class]int
	enums      map[*load.Enum]*EnumOutline
	enumList   []*EnumOutline
	elements   map[*load.Element]*ElementOutline
	elemList   []*ElementOutline
	packages   map[string]*PackageOutline
	fields     map[*load.Property]*FieldOutline
	used       []*PackageOutline
}

// Config returns the configuration the outline was compiled with.
func (o *Outline) Config() *Config { return o.cfg }

// Model returns the input graph.
func (o *Outline) Model() *load.Model { return o.model }

// CodeModel returns the generated code model.
func (o *Outline) CodeModel() *codemodel.Model { return o.code }

// Classes returns every class outline in creation order.
func (o *Outline) Classes() []*ClassOutline { return o.classes }

// Enums returns every enum outline in creation order.
func (o *Outline) Enums() []*EnumOutline { return o.enumList }

// Elements returns every element outline in creation order.
func (o *Outline) Elements() []*ElementOutline { return o.elemList }

// Class returns the outline of a class node.
func (o *Outline) Class(node *load.Class) (*ClassOutline, bool) {
	i, ok := o.classIndex[node]
	if !ok {
		return nil, false
	}
	return o.classes[i], true
}

// Enum returns the outline of an enum node.
func (o *Outline) Enum(node *load.Enum) (*EnumOutline, bool) {
	eo, ok := o.enums[node]
	return eo, ok
}

// Element returns the outline of an element node.
func (o *Outline) Element(node *load.Element) (*ElementOutline, bool) {
	eo, ok := o.elements[node]
	return eo, ok
}

// Field returns the field generated for a property.
func (o *Outline) Field(prop *load.Property) (*FieldOutline, bool) {
	fo, ok := o.fields[prop]
	return fo, ok
}

// Packages returns every package outline sorted by import path.
func (o *Outline) Packages() []*PackageOutline {
	pkgs := make([]*PackageOutline, 0, len(o.packages))
	for _, p := range o.packages {
		pkgs = append(pkgs, p)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].Path() < pkgs[j].Path() })
	return pkgs
}

// UsedPackages returns the packages holding package-level classes or
// global elements, sorted by import path.
func (o *Outline) UsedPackages() []*PackageOutline { return o.used }

// Diagnostics returns everything reported during the compile.
func (o *Outline) Diagnostics() []Diagnostic { return o.collector.Diagnostics() }

// ClassOutline links a class node to its generated types.
type ClassOutline struct {
	// Target is the class node.
	Target *load.Class
	// Ref is the exposed type: the bean struct, or the interface under
	// InterfaceAndImpl.
	Ref *codemodel.Defined
	// Impl is the implementation struct.
	Impl *codemodel.Defined
	// ImplRef is the type instantiated by factories: a user-provided
	// implementation when one is configured, else Impl.
	ImplRef *codemodel.Defined

	outline    *Outline
	index      int
	state      slotState
	pkg        *PackageOutline
	superclass *ClassOutline
	fields     []*FieldOutline
}

// Outline returns the compile result the class belongs to.
func (cc *ClassOutline) Outline() *Outline { return cc.outline }

// Superclass returns the outline of the declared base class, nil when the
// class has no base inside the graph.
func (cc *ClassOutline) Superclass() *ClassOutline { return cc.superclass }

// Fields returns the generated fields in generation order.
func (cc *ClassOutline) Fields() []*FieldOutline { return cc.fields }

// Package returns the package outline of the exposed type.
func (cc *ClassOutline) Package() *PackageOutline { return cc.pkg }

// LookupField returns the field with the given Go name declared by the
// class or one of its superclasses.
func (cc *ClassOutline) LookupField(name string) (*FieldOutline, bool) {
	for c := cc; c != nil; c = c.superclass {
		for _, fo := range c.fields {
			if fo.Field != nil && fo.Field.Name == name {
				return fo, true
			}
		}
	}
	return nil, false
}

// exposedMethod returns the method declared on the exposed type of cc or
// of its nearest superclass.
func (cc *ClassOutline) exposedMethod(name string) (*codemodel.Method, bool) {
	for c := cc; c != nil; c = c.superclass {
		if m, ok := c.Ref.LookupMethod(name); ok {
			return m, true
		}
	}
	return nil, false
}

// TypeOf returns the code model type of a property type reference.
func (cc *ClassOutline) TypeOf(ref load.TypeRef) codemodel.Ref { return cc.outline.TypeOf(ref) }

// MethodWriter returns a writer declaring methods on the class.
func (cc *ClassOutline) MethodWriter() *MethodWriter { return &MethodWriter{cc: cc} }

// MethodWriter declares methods on the implementation and, when the class
// has a separate exposed interface, the matching abstract method on it.
type MethodWriter struct {
	cc *ClassOutline
}

// MethodDecl is a method declared by a MethodWriter.
type MethodDecl struct {
	Impl *codemodel.Method
	// Exposed is nil when the exposed type is the implementation.
	Exposed *codemodel.Method
}

// Declare declares a method with the given results.
func (w *MethodWriter) Declare(name string, results ...codemodel.Ref) *MethodDecl {
	d := &MethodDecl{Impl: w.cc.Impl.Method(name, results...)}
	if w.cc.Ref != w.cc.Impl {
		d.Exposed = w.cc.Ref.Method(name, results...)
	}
	return d
}

// Param adds a parameter to both declarations.
func (d *MethodDecl) Param(name string, typ codemodel.Ref) *MethodDecl {
	d.Impl.Param(name, typ)
	if d.Exposed != nil {
		d.Exposed.Param(name, typ)
	}
	return d
}

// SetBody sets the implementation body.
func (d *MethodDecl) SetBody(b codemodel.Body) *MethodDecl {
	d.Impl.Body = b
	return d
}

// SetDoc documents both declarations.
func (d *MethodDecl) SetDoc(doc string) *MethodDecl {
	d.Impl.Doc = doc
	if d.Exposed != nil {
		d.Exposed.Doc = doc
	}
	return d
}

// FieldOutline is the field generated for one property.
type FieldOutline struct {
	// Property is the source property.
	Property *load.Property
	// Class is the owning class.
	Class *ClassOutline
	// Field is the generated field. Strategies may leave it nil for
	// properties that produce no storage.
	Field *codemodel.Field
	// RawType is the property type before collection or pointer wrapping.
	RawType codemodel.Ref
	// Getter and Setter are the accessors, if generated.
	Getter *MethodDecl
	Setter *MethodDecl
	// Extra holds additional accessors such as IsSet and Unset.
	Extra []*MethodDecl
	// Overrides is the superclass field with the same name.
	Overrides *FieldOutline
}

// EnumOutline links an enum node to its generated type.
type EnumOutline struct {
	Target *load.Enum
	Type   *codemodel.Defined

	pkg        *PackageOutline
	constants  []*codemodel.EnumConstant
	needsValue bool
	filled     bool
}

// Package returns the package outline of the enum.
func (eo *EnumOutline) Package() *PackageOutline { return eo.pkg }

// Constants returns the emitted constants in declaration order.
func (eo *EnumOutline) Constants() []*codemodel.EnumConstant { return eo.constants }

// NeedsValue reports whether constants carry backing values distinct from
// their identifiers.
func (eo *EnumOutline) NeedsValue() bool { return eo.needsValue }

// ElementOutline is the wrapper generated for a standalone element.
type ElementOutline struct {
	Target *load.Element
	// Impl is the wrapper struct; nil for elements bound to a class.
	Impl *codemodel.Defined
	// Value holds the element content.
	Value *codemodel.Field

	pkg    *PackageOutline
	filled bool
}

// Package returns the package outline of the element.
func (eo *ElementOutline) Package() *PackageOutline { return eo.pkg }

// PackageOutline groups the outlines of one generated package.
type PackageOutline struct {
	outline  *Outline
	pkg      *codemodel.Package
	classes  []*ClassOutline
	enums    []*EnumOutline
	elements []*ElementOutline
	factory  []*codemodel.Method

	mostUsed   string
	calculated bool
}

// Path returns the import path.
func (p *PackageOutline) Path() string { return p.pkg.Path }

// Package returns the code model package.
func (p *PackageOutline) Package() *codemodel.Package { return p.pkg }

// Classes returns the classes of the package ordered by qualified name.
func (p *PackageOutline) Classes() []*ClassOutline {
	classes := slices.Clone(p.classes)
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].Target.FullName() < classes[j].Target.FullName()
	})
	return classes
}

// Enums returns the enums of the package ordered by qualified name.
func (p *PackageOutline) Enums() []*EnumOutline {
	enums := slices.Clone(p.enums)
	sort.SliceStable(enums, func(i, j int) bool {
		return enums[i].Target.FullName() < enums[j].Target.FullName()
	})
	return enums
}

// Elements returns the element wrappers of the package in creation order.
func (p *PackageOutline) Elements() []*ElementOutline { return p.elements }

// Factory returns the constructors generated for the package.
func (p *PackageOutline) Factory() []*codemodel.Method { return p.factory }

// MostUsedNamespace returns the namespace most frequently used by the
// type and element names of the package's classes, "" for an empty
// package.
func (p *PackageOutline) MostUsedNamespace() string {
	if !p.calculated {
		p.calcDefaultValues()
	}
	return p.mostUsed
}

func qualifiedName(parts ...string) string { return strings.Join(parts, ".") }
