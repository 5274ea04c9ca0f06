package gen

import (
	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

var (
	bigInt    = codemodel.Qual{Path: "math/big", Name: "Int"}
	bigFloat  = codemodel.Qual{Path: "math/big", Name: "Float"}
	timeTime  = codemodel.Qual{Path: "time", Name: "Time"}
	timeDur   = codemodel.Qual{Path: "time", Name: "Duration"}
	stringSeq = codemodel.Slice{Elem: codemodel.String}
)

// builtins maps schema builtin type names to Go types. Unknown names map
// to string.
var builtins = map[string]codemodel.Ref{
	"anySimpleType":      codemodel.String,
	"string":             codemodel.String,
	"normalizedString":   codemodel.String,
	"token":              codemodel.String,
	"language":           codemodel.String,
	"Name":               codemodel.String,
	"NCName":             codemodel.String,
	"NMTOKEN":            codemodel.String,
	"ID":                 codemodel.String,
	"IDREF":              codemodel.String,
	"ENTITY":             codemodel.String,
	"NOTATION":           codemodel.String,
	"anyURI":             codemodel.String,
	"NMTOKENS":           stringSeq,
	"IDREFS":             stringSeq,
	"ENTITIES":           stringSeq,
	"boolean":            codemodel.Bool,
	"byte":               codemodel.Int8,
	"short":              codemodel.Int16,
	"int":                codemodel.Int32,
	"long":               codemodel.Int64,
	"unsignedByte":       codemodel.Uint8,
	"unsignedShort":      codemodel.Uint16,
	"unsignedInt":        codemodel.Uint32,
	"unsignedLong":       codemodel.Uint64,
	"integer":            codemodel.Pointer{Elem: bigInt},
	"positiveInteger":    codemodel.Pointer{Elem: bigInt},
	"negativeInteger":    codemodel.Pointer{Elem: bigInt},
	"nonNegativeInteger": codemodel.Pointer{Elem: bigInt},
	"nonPositiveInteger": codemodel.Pointer{Elem: bigInt},
	"decimal":            codemodel.Pointer{Elem: bigFloat},
	"float":              codemodel.Float32,
	"double":             codemodel.Float64,
	"dateTime":           timeTime,
	"date":               timeTime,
	"time":               timeTime,
	"gYear":              timeTime,
	"gYearMonth":         timeTime,
	"gMonth":             timeTime,
	"gMonthDay":          timeTime,
	"gDay":               timeTime,
	"duration":           timeDur,
	"base64Binary":       codemodel.Bytes,
	"hexBinary":          codemodel.Bytes,
	"QName":              codemodel.XMLName,
	"anyType":            codemodel.Any,
}

// BuiltinType returns the Go type of a schema builtin.
func BuiltinType(name string) codemodel.Ref {
	if r, ok := builtins[name]; ok {
		return r
	}
	return codemodel.String
}

// TypeOf returns the code model type of a type reference, materializing
// classes and enums on demand.
func (o *Outline) TypeOf(ref load.TypeRef) codemodel.Ref {
	switch {
	case ref.Class != nil:
		return o.class(ref.Class).Ref
	case ref.Enum != nil:
		return o.enum(ref.Enum).Type
	case ref.External != nil:
		return codemodel.Qual{Path: ref.External.Path, Name: ref.External.Name}
	default:
		return BuiltinType(ref.Builtin)
	}
}

// ValueType returns the type of a field holding a single value of r.
// Structs are held by pointer, and so are optional scalars.
func ValueType(r codemodel.Ref, optional bool) codemodel.Ref {
	switch t := r.(type) {
	case *codemodel.Defined:
		if t.Kind == codemodel.KindStruct || (optional && t.Kind == codemodel.KindEnum) {
			return codemodel.Pointer{Elem: r}
		}
		return r
	case codemodel.Pointer, codemodel.Slice, codemodel.Map:
		return r
	case codemodel.Builtin:
		if t == codemodel.Bytes || t == codemodel.Any || !optional {
			return r
		}
	case codemodel.Qual:
		if !optional {
			return r
		}
	}
	return codemodel.Pointer{Elem: r}
}

// ElemType returns the element type of a collection of r.
func ElemType(r codemodel.Ref) codemodel.Ref {
	if d, ok := r.(*codemodel.Defined); ok && d.Kind == codemodel.KindStruct {
		return codemodel.Pointer{Elem: r}
	}
	return r
}

// enumBaseType returns the Go type of enum values of a base kind.
func enumBaseType(k load.BaseKind) codemodel.Ref {
	switch k {
	case load.BaseBoolean:
		return codemodel.Bool
	case load.BaseByte:
		return codemodel.Int8
	case load.BaseShort:
		return codemodel.Int16
	case load.BaseInt:
		return codemodel.Int32
	case load.BaseLong:
		return codemodel.Int64
	case load.BaseUnsignedByte:
		return codemodel.Uint8
	case load.BaseUnsignedShort:
		return codemodel.Uint16
	case load.BaseUnsignedInt:
		return codemodel.Uint32
	case load.BaseUnsignedLong:
		return codemodel.Uint64
	case load.BaseFloat:
		return codemodel.Float32
	case load.BaseDouble:
		return codemodel.Float64
	case load.BaseQName:
		return codemodel.XMLName
	default:
		return codemodel.String
	}
}
