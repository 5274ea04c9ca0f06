package codemodel

// Ref is a type expression. Implementations are Builtin, Qual, Slice, Map,
// Pointer and *Defined.
type Ref interface {
	String() string
	ref()
}

// Builtin is a predeclared Go type such as string or int64.
type Builtin string

func (b Builtin) String() string { return string(b) }
func (Builtin) ref() {}

// Predeclared types used by the compiler.
const (
	String  Builtin = "string"
	Bool    Builtin = "bool"
	Int8    Builtin = "int8"
	Int16   Builtin = "int16"
	Int32   Builtin = "int32"
	Int64   Builtin = "int64"
	Uint8   Builtin = "uint8"
	Uint16  Builtin = "uint16"
	Uint32  Builtin = "uint32"
	Uint64  Builtin = "uint64"
	Float32 Builtin = "float32"
	Float64 Builtin = "float64"
	Bytes   Builtin = "[]byte"
	Any     Builtin = "any"
	Error   Builtin = "error"
)

// Qual references a type declared outside the model.
type Qual struct {
	Path string
	Name string
}

func (q Qual) String() string {
	if q.Path == "" {
		return q.Name
	}
	return q.Path + "." + q.Name
}

func (Qual) ref() {}

// Slice is []Elem.
type Slice struct{ Elem Ref }

func (s Slice) String() string { return "[]" + s.Elem.String() }
func (Slice) ref() {}

// Map is map[Key]Elem.
type Map struct{ Key, Elem Ref }

func (m Map) String() string { return "map[" + m.Key.String() + "]" + m.Elem.String() }
func (Map) ref() {}

// Pointer is *Elem.
type Pointer struct{ Elem Ref }

func (p Pointer) String() string { return "*" + p.Elem.String() }
func (Pointer) ref() {}

// XMLName is encoding/xml.Name, the qualified name type of generated code.
var XMLName = Qual{Path: "encoding/xml", Name: "Name"}

// Underlying strips pointers and returns the element reference.
func Underlying(r Ref) Ref {
	for {
		p, ok := r.(Pointer)
		if !ok {
			return r
		}
		r = p.Elem
	}
}

// SameType reports whether two references denote the same type.
func SameType(a, b Ref) bool {
	if a == nil || b == nil {
		return a == b
	}
	if da, ok := a.(*Defined); ok {
		db, ok := b.(*Defined)
		return ok && da == db
	}
	return a.String() == b.String()
}
