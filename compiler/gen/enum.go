package gen

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/syssam/beangen"
	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

// Names of the generated enum methods.
const (
	enumValueMethod     = "Value"
	enumFromValueMethod = "FromValue"
	enumFromValueParam  = "v"
)

// enum returns the outline of an enum node, declaring its type on first
// demand.
func (o *Outline) enum(node *load.Enum) *EnumOutline {
	if eo, ok := o.enums[node]; ok {
		return eo
	}
	c := o.containerOf(node.Parent, node.Package, aspectExposed, nil)
	typ := o.define(c, node.FullName(), node.Name, codemodel.KindEnum)
	eo := &EnumOutline{
		Target: node,
		Type:   typ,
		pkg:    o.packageFor(typ.Package().Path),
	}
	eo.pkg.enums = append(eo.pkg.enums, eo)
	o.enums[node] = eo
	o.enumList = append(o.enumList, eo)
	return eo
}

// needsValue reports whether constants must carry backing values: the base
// kind is not string, or some lexical value differs from its identifier.
func needsValue(node *load.Enum) bool {
	if node.Base != load.BaseString {
		return true
	}
	for _, m := range node.Members {
		if m.Lexical != m.Name {
			return true
		}
	}
	return false
}

// fillEnum generates the constants and methods of an enum once.
func (o *Outline) fillEnum(eo *EnumOutline) {
	if eo.filled {
		return
	}
	eo.filled = true
	node, typ := eo.Target, eo.Type

	writeTypeName(typ.Annotate(AnnotationType), node.TypeName, eo.pkg.MostUsedNamespace())
	typ.Annotate(AnnotationEnum).Set("value", node.Base.String())
	if node.Doc != "" {
		typ.Doc = node.Doc
	}

	eo.needsValue = needsValue(node)
	valueType := codemodel.Ref(codemodel.String)
	if eo.needsValue {
		valueType = enumBaseType(node.Base)
	}
	typ.Underlying = valueType

	check := o.newEnumMemberCheck(eo)
	for _, m := range node.Members {
		if !check.usable(m) {
			continue
		}
		var value any
		if eo.needsValue {
			v, err := parseLexical(node.Base, m.Lexical)
			if err != nil {
				o.errorf(eo.Target.FullName(), ErrIllegalLexical, m.Lexical, node.Base.String())
				continue
			}
			value = v
		}
		c := typ.EnumConstant(m.Name)
		c.Lexical = m.Lexical
		c.Value = value
		c.Doc = m.Doc
		if m.Lexical != m.Name {
			c.Annotate(AnnotationEnumValue).Set("value", m.Lexical)
		}
		eo.constants = append(eo.constants, c)
	}

	value := typ.Method(enumValueMethod, valueType)
	value.Body = codemodel.EnumValue{Enum: typ}
	value.Doc = fmt.Sprintf("%s returns the value of the %s constant.", enumValueMethod, typ.FlatName())

	from := typ.Method(enumFromValueMethod, typ, codemodel.Error)
	from.Static = true
	from.Param(enumFromValueParam, valueType)
	from.Body = codemodel.EnumLookup{Enum: typ, Linear: eo.needsValue, Param: enumFromValueParam}
	from.Doc = fmt.Sprintf("%s%s returns the %s constant with the given value.", typ.FlatName(), enumFromValueMethod, typ.FlatName())
}

// Value returns the value of a constant: its backing value when the enum
// needs values, else its identifier.
func (eo *EnumOutline) Value(c *codemodel.EnumConstant) any {
	if eo.needsValue {
		return c.Value
	}
	return c.Name
}

// FromValue returns the first constant, in declaration order, whose value
// equals v. A string v is parsed first when the base kind is not string.
// The error is a *beangen.NoMatchingConstantError.
func (eo *EnumOutline) FromValue(v any) (*codemodel.EnumConstant, error) {
	base := eo.Target.Base
	if !eo.needsValue {
		if s, ok := v.(string); ok {
			for _, c := range eo.constants {
				if c.Name == s {
					return c, nil
				}
			}
		}
		return nil, beangen.NewNoMatchingConstantError(eo.Type.FullName(), textOf(base, v))
	}
	want, ok := coerce(base, v)
	if ok {
		for _, c := range eo.constants {
			if valuesEqual(base, c.Value, want) {
				return c, nil
			}
		}
	}
	return nil, beangen.NewNoMatchingConstantError(eo.Type.FullName(), textOf(base, v))
}

// coerce converts v to the Go type of the base kind: strings are parsed,
// numbers are converted when they fit.
func coerce(k load.BaseKind, v any) (any, bool) {
	if s, ok := v.(string); ok && k != load.BaseString {
		parsed, err := parseLexical(k, s)
		return parsed, err == nil
	}
	want := reflect.TypeOf(baseZero(k))
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Type() == want {
		return v, true
	}
	if !k.IsPrimitive() || !isNumeric(rv.Kind()) || !isNumeric(want.Kind()) {
		return nil, false
	}
	cv := rv.Convert(want)
	if !cv.CanConvert(rv.Type()) || cv.Convert(rv.Type()).Interface() != v {
		return nil, false
	}
	return cv.Interface(), true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// valuesEqual compares by value for primitive kinds and strings, and
// structurally otherwise.
func valuesEqual(k load.BaseKind, a, b any) bool {
	if k.IsPrimitive() || k == load.BaseString {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// textOf renders v for error messages: directly for strings and primitive
// kinds, with its String method or fmt otherwise.
func textOf(k load.BaseKind, v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if k.IsPrimitive() {
		return fmt.Sprint(v)
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", v)
}

func baseZero(k load.BaseKind) any {
	switch k {
	case load.BaseBoolean:
		return false
	case load.BaseByte:
		return int8(0)
	case load.BaseShort:
		return int16(0)
	case load.BaseInt:
		return int32(0)
	case load.BaseLong:
		return int64(0)
	case load.BaseUnsignedByte:
		return uint8(0)
	case load.BaseUnsignedShort:
		return uint16(0)
	case load.BaseUnsignedInt:
		return uint32(0)
	case load.BaseUnsignedLong:
		return uint64(0)
	case load.BaseFloat:
		return float32(0)
	case load.BaseDouble:
		return float64(0)
	case load.BaseQName:
		return load.QName{}
	default:
		return ""
	}
}

// parseLexical parses the lexical form of a value of the given base kind.
func parseLexical(k load.BaseKind, s string) (any, error) {
	t := strings.TrimSpace(s)
	switch k {
	case load.BaseString:
		return s, nil
	case load.BaseBoolean:
		switch t {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", s)
	case load.BaseByte:
		v, err := strconv.ParseInt(t, 10, 8)
		return int8(v), err
	case load.BaseShort:
		v, err := strconv.ParseInt(t, 10, 16)
		return int16(v), err
	case load.BaseInt:
		v, err := strconv.ParseInt(t, 10, 32)
		return int32(v), err
	case load.BaseLong:
		return strconv.ParseInt(t, 10, 64)
	case load.BaseUnsignedByte:
		v, err := strconv.ParseUint(t, 10, 8)
		return uint8(v), err
	case load.BaseUnsignedShort:
		v, err := strconv.ParseUint(t, 10, 16)
		return uint16(v), err
	case load.BaseUnsignedInt:
		v, err := strconv.ParseUint(t, 10, 32)
		return uint32(v), err
	case load.BaseUnsignedLong:
		return strconv.ParseUint(t, 10, 64)
	case load.BaseFloat:
		v, err := parseFloat(t, 32)
		return float32(v), err
	case load.BaseDouble:
		return parseFloat(t, 64)
	case load.BaseQName:
		if t == "" {
			return nil, fmt.Errorf("empty QName")
		}
		return load.ParseQName(t), nil
	default:
		return nil, fmt.Errorf("unsupported base kind %s", k)
	}
}

// parseFloat accepts the schema spellings of the special values.
func parseFloat(s string, bits int) (float64, error) {
	switch s {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, bits)
}
