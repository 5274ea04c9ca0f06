package load

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument indicates a model document that cannot be linked.
var ErrInvalidDocument = errors.New("beangen: invalid model document")

// Error describes a failure to read or link a model document.
type Error struct {
	File    string // Document path, if known.
	Path    string // Location inside the document, e.g. "classes[2].base".
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("beangen: load")
	if e.File != "" {
		b.WriteString(" ")
		b.WriteString(e.File)
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether the target matches ErrInvalidDocument.
func (e *Error) Is(target error) bool { return target == ErrInvalidDocument }

// Document is the serialized form of a model graph. References between
// nodes are by qualified name and resolved by Link.
type Document struct {
	Classes  []*ClassDoc   `yaml:"classes,omitempty"`
	Enums    []*EnumDoc    `yaml:"enums,omitempty"`
	Elements []*ElementDoc `yaml:"elements,omitempty"`
}

// ClassDoc is a serialized Class.
type ClassDoc struct {
	Name    string `yaml:"name"`
	Package string `yaml:"package,omitempty"`
	// Outer is the qualified name of the enclosing class.
	Outer string `yaml:"outer,omitempty"`
	// OuterElement is the qualified name of the enclosing element wrapper.
	OuterElement      string         `yaml:"outerElement,omitempty"`
	TypeName          *QName         `yaml:"typeName,omitempty"`
	ElementName       *QName         `yaml:"elementName,omitempty"`
	Base              string         `yaml:"base,omitempty"`
	BaseRef           string         `yaml:"baseRef,omitempty"`
	Properties        []*PropertyDoc `yaml:"properties,omitempty"`
	Ordered           bool           `yaml:"ordered,omitempty"`
	Serializable      bool           `yaml:"serializable,omitempty"`
	SerialVersion     *int64         `yaml:"serialVersion,omitempty"`
	AttributeWildcard bool           `yaml:"attributeWildcard,omitempty"`
	ImplClass         string         `yaml:"implClass,omitempty"`
	Doc               string         `yaml:"doc,omitempty"`
}

// PropertyDoc is a serialized Property.
type PropertyDoc struct {
	Name       string      `yaml:"name"`
	Kind       string      `yaml:"kind,omitempty"`
	Type       TypeDoc     `yaml:"type,omitempty"`
	Collection bool        `yaml:"collection,omitempty"`
	Optional   bool        `yaml:"optional,omitempty"`
	Adapter    *AdapterDoc `yaml:"adapter,omitempty"`
	ID         string      `yaml:"id,omitempty"`
	MimeType   string      `yaml:"mimeType,omitempty"`
	Strategy   string      `yaml:"strategy,omitempty"`
	Index      *int        `yaml:"index,omitempty"`
	Dummy      bool        `yaml:"dummy,omitempty"`
	Doc        string      `yaml:"doc,omitempty"`
}

// AdapterDoc is a serialized Adapter.
type AdapterDoc struct {
	Type          string `yaml:"type,omitempty"`
	AttachmentRef bool   `yaml:"attachmentRef,omitempty"`
}

// TypeDoc is a serialized TypeRef. Exactly one member is set.
type TypeDoc struct {
	Class    string `yaml:"class,omitempty"`
	Enum     string `yaml:"enum,omitempty"`
	Builtin  string `yaml:"builtin,omitempty"`
	External string `yaml:"external,omitempty"`
}

// EnumDoc is a serialized Enum.
type EnumDoc struct {
	Name     string      `yaml:"name"`
	Package  string      `yaml:"package,omitempty"`
	Outer    string      `yaml:"outer,omitempty"`
	TypeName *QName      `yaml:"typeName,omitempty"`
	Base     string      `yaml:"base,omitempty"`
	Members  []MemberDoc `yaml:"members,omitempty"`
	Doc      string      `yaml:"doc,omitempty"`
}

// MemberDoc is a serialized EnumMember.
type MemberDoc struct {
	Name    string `yaml:"name"`
	Lexical string `yaml:"value"`
	Doc     string `yaml:"doc,omitempty"`
}

// ElementDoc is a serialized Element.
type ElementDoc struct {
	Name      QName   `yaml:"name"`
	Package   string  `yaml:"package,omitempty"`
	Class     string  `yaml:"class,omitempty"`
	Content   TypeDoc `yaml:"content,omitempty"`
	ClassName string  `yaml:"className,omitempty"`
	Global    bool    `yaml:"global,omitempty"`
	Doc       string  `yaml:"doc,omitempty"`
}

// ReadFile reads and links the model document at path.
// JSON documents are accepted since they are valid YAML.
func ReadFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{File: path, Cause: err}
	}
	defer f.Close()
	doc, err := Decode(f)
	if err != nil {
		var lerr *Error
		if errors.As(err, &lerr) {
			lerr.File = path
		}
		return nil, err
	}
	m, err := doc.Link()
	if err != nil {
		var lerr *Error
		if errors.As(err, &lerr) {
			lerr.File = path
		}
		return nil, err
	}
	return m, nil
}

// Decode parses a model document. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &Error{Message: "decode document", Cause: err}
	}
	return &doc, nil
}

// linker resolves qualified names of a document into pointers.
type linker struct {
	classes  map[string]*Class
	enums    map[string]*Enum
	elements map[string]*Element
}

// Link resolves the document into a model graph with pointer identity.
func (d *Document) Link() (*Model, error) {
	l := &linker{
		classes:  make(map[string]*Class, len(d.Classes)),
		enums:    make(map[string]*Enum, len(d.Enums)),
		elements: make(map[string]*Element, len(d.Elements)),
	}
	var (
		classes  = make([]*Class, len(d.Classes))
		enums    = make([]*Enum, len(d.Enums))
		elements = make([]*Element, len(d.Elements))
	)
	// Declare every node first so references may point forward.
	for i, ed := range d.Elements {
		e := &Element{
			Name:      ed.Name,
			Package:   ed.Package,
			Parent:    PackageParent(),
			ClassName: ed.ClassName,
			Global:    ed.Global,
			Doc:       ed.Doc,
		}
		key := e.FullName()
		if _, ok := l.elements[key]; ok {
			return nil, &Error{Path: fmt.Sprintf("elements[%d]", i), Message: fmt.Sprintf("element %q redeclared", key)}
		}
		l.elements[key] = e
		elements[i] = e
	}
	for i, cd := range d.Classes {
		key := classKey(cd)
		if _, ok := l.classes[key]; ok {
			return nil, &Error{Path: fmt.Sprintf("classes[%d]", i), Message: fmt.Sprintf("class %q redeclared", key)}
		}
		c := &Class{
			Name:              cd.Name,
			Package:           cd.Package,
			Parent:            PackageParent(),
			TypeName:          cd.TypeName,
			ElementName:       cd.ElementName,
			Ordered:           cd.Ordered,
			Serializable:      cd.Serializable,
			SerialVersion:     cd.SerialVersion,
			AttributeWildcard: cd.AttributeWildcard,
			ImplClass:         cd.ImplClass,
			Doc:               cd.Doc,
		}
		if cd.BaseRef != "" {
			ref := ParseExternalRef(cd.BaseRef)
			c.BaseRef = &ref
		}
		l.classes[key] = c
		classes[i] = c
	}
	for i, ed := range d.Enums {
		base, ok := ParseBaseKind(ed.Base)
		if !ok {
			return nil, &Error{Path: fmt.Sprintf("enums[%d].base", i), Message: fmt.Sprintf("unknown base kind %q", ed.Base)}
		}
		e := &Enum{
			Name:     ed.Name,
			Package:  ed.Package,
			Parent:   PackageParent(),
			TypeName: ed.TypeName,
			Base:     base,
			Doc:      ed.Doc,
		}
		for _, md := range ed.Members {
			e.Members = append(e.Members, &EnumMember{Name: md.Name, Lexical: md.Lexical, Doc: md.Doc})
		}
		key := ed.Name
		if ed.Outer != "" {
			key = ed.Outer + "." + ed.Name
		} else if ed.Package != "" {
			key = ed.Package + "." + ed.Name
		}
		l.enums[key] = e
		enums[i] = e
	}
	// Then resolve the references.
	for i, cd := range d.Classes {
		c := classes[i]
		path := fmt.Sprintf("classes[%d]", i)
		switch {
		case cd.Outer != "":
			outer, err := l.class(path+".outer", cd.Outer)
			if err != nil {
				return nil, err
			}
			c.Parent = ClassParent(outer)
		case cd.OuterElement != "":
			outer, ok := l.elements[cd.OuterElement]
			if !ok {
				return nil, &Error{Path: path + ".outerElement", Message: fmt.Sprintf("unknown element %q", cd.OuterElement)}
			}
			c.Parent = ElementParent(outer)
		}
		if cd.Base != "" {
			if cd.BaseRef != "" {
				return nil, &Error{Path: path, Message: "base and baseRef are exclusive"}
			}
			base, err := l.class(path+".base", cd.Base)
			if err != nil {
				return nil, err
			}
			c.Base = base
		}
		for j, pd := range cd.Properties {
			p, err := l.property(fmt.Sprintf("%s.properties[%d]", path, j), j, pd)
			if err != nil {
				return nil, err
			}
			c.Properties = append(c.Properties, p)
		}
	}
	for i, ed := range d.Enums {
		if ed.Outer != "" {
			outer, err := l.class(fmt.Sprintf("enums[%d].outer", i), ed.Outer)
			if err != nil {
				return nil, err
			}
			enums[i].Parent = ClassParent(outer)
		}
	}
	for i, ed := range d.Elements {
		e := elements[i]
		path := fmt.Sprintf("elements[%d]", i)
		if ed.Class != "" {
			c, err := l.class(path+".class", ed.Class)
			if err != nil {
				return nil, err
			}
			e.Class = c
			continue
		}
		ref, err := l.typeRef(path+".content", ed.Content)
		if err != nil {
			return nil, err
		}
		e.Content = ref
	}
	return NewModel(classes, enums, elements), nil
}

func classKey(cd *ClassDoc) string {
	switch {
	case cd.Outer != "":
		return cd.Outer + "." + cd.Name
	case cd.OuterElement != "":
		return cd.OuterElement + "." + cd.Name
	case cd.Package != "":
		return cd.Package + "." + cd.Name
	default:
		return cd.Name
	}
}

func (l *linker) class(path, name string) (*Class, error) {
	c, ok := l.classes[name]
	if !ok {
		return nil, &Error{Path: path, Message: fmt.Sprintf("unknown class %q", name)}
	}
	return c, nil
}

func (l *linker) typeRef(path string, td TypeDoc) (TypeRef, error) {
	switch {
	case td.Class != "":
		c, err := l.class(path+".class", td.Class)
		if err != nil {
			return TypeRef{}, err
		}
		return TypeRef{Class: c}, nil
	case td.Enum != "":
		e, ok := l.enums[td.Enum]
		if !ok {
			return TypeRef{}, &Error{Path: path + ".enum", Message: fmt.Sprintf("unknown enum %q", td.Enum)}
		}
		return TypeRef{Enum: e}, nil
	case td.External != "":
		ref := ParseExternalRef(td.External)
		return TypeRef{External: &ref}, nil
	case td.Builtin != "":
		return TypeRef{Builtin: td.Builtin}, nil
	default:
		return TypeRef{Builtin: "string"}, nil
	}
}

func (l *linker) property(path string, pos int, pd *PropertyDoc) (*Property, error) {
	p := &Property{
		Name:       pd.Name,
		Collection: pd.Collection,
		Optional:   pd.Optional,
		MimeType:   pd.MimeType,
		Strategy:   pd.Strategy,
		Index:      pos,
		Dummy:      pd.Dummy,
		Doc:        pd.Doc,
	}
	if pd.Index != nil {
		p.Index = *pd.Index
	}
	switch pd.Kind {
	case "", "element":
		p.Kind = KindElement
	case "attribute":
		p.Kind = KindAttribute
	case "reference":
		p.Kind = KindReference
	case "wildcard":
		p.Kind = KindWildcard
	default:
		return nil, &Error{Path: path + ".kind", Message: fmt.Sprintf("unknown property kind %q", pd.Kind)}
	}
	switch pd.ID {
	case "":
	case "ID":
		p.ID = ID
	case "IDREF":
		p.ID = IDRef
	default:
		return nil, &Error{Path: path + ".id", Message: fmt.Sprintf("unknown id kind %q", pd.ID)}
	}
	if pd.Adapter != nil {
		p.Adapter = &Adapter{
			Type:          ParseExternalRef(pd.Adapter.Type),
			AttachmentRef: pd.Adapter.AttachmentRef,
		}
	}
	ref, err := l.typeRef(path+".type", pd.Type)
	if err != nil {
		return nil, err
	}
	p.Type = ref
	return p, nil
}
