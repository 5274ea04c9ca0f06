package emit

import (
	"fmt"
	"math"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/load"
)

// enum renders an enum type. Enums whose values can be Go constants are
// declared over their value type; others are ordinals indexing a values
// table.
func (r *renderer) enum(g *jen.Group, d *codemodel.Defined) {
	name := d.FlatName()
	consts := uniqueConstants(d)
	constable := isConstable(d, consts)
	docComment(g, d.Doc, fmt.Sprintf("%s is an enumeration.", name))
	directives(g, d.Annotations)
	if constable {
		g.Type().Id(name).Add(typeCode(d.Underlying))
	} else {
		g.Type().Id(name).Int()
	}

	g.Const().DefsFunc(func(defs *jen.Group) {
		for i, c := range consts {
			docComment(defs, c.Doc, "")
			directives(defs, c.Annotations)
			switch {
			case constable && c.Value != nil:
				defs.Id(enumConstName(d, c)).Id(name).Op("=").Add(untyped(c.Value))
			case constable:
				defs.Id(enumConstName(d, c)).Id(name).Op("=").Lit(c.Name)
			case i == 0:
				defs.Id(enumConstName(d, c)).Id(name).Op("=").Iota()
			default:
				defs.Id(enumConstName(d, c))
			}
		}
	})

	table := lowerFirst(name) + "Constants"
	g.Var().Id(table).Op("=").Index().Id(name).ValuesFunc(func(vals *jen.Group) {
		for _, c := range consts {
			vals.Id(enumConstName(d, c))
		}
	})
	values := lowerFirst(name) + "Values"
	if !constable {
		g.Var().Id(values).Op("=").Index().Add(typeCode(d.Underlying)).ValuesFunc(func(vals *jen.Group) {
			for _, c := range consts {
				vals.Add(valueCode(c.Value))
			}
		})
	}

	for _, m := range d.Methods {
		docComment(g, m.Doc, "")
		switch b := m.Body.(type) {
		case codemodel.EnumValue:
			var ret jen.Code
			if constable {
				ret = typeCode(d.Underlying).Call(jen.Id("e"))
			} else {
				ret = jen.Id(values).Index(jen.Id("e"))
			}
			signature(g.Func().Params(jen.Id("e").Id(name)).Id(m.Name), m).Block(jen.Return(ret))
		case codemodel.EnumLookup:
			signature(g.Func().Id(name+m.Name), m).BlockFunc(func(body *jen.Group) {
				r.lookup(body, d, b, consts, constable, table, values)
			})
		}
	}

	g.Comment("String returns the string form of the constant value.")
	g.Func().Params(jen.Id("e").Id(name)).Id("String").Params().String().BlockFunc(func(body *jen.Group) {
		if constable && codemodel.SameType(d.Underlying, codemodel.String) {
			body.Return(jen.String().Call(jen.Id("e")))
			return
		}
		body.Return(jen.Qual("fmt", "Sprint").Call(jen.Id("e").Dot("Value").Call()))
	})
	g.Var().Id("_").Qual(runtimePkg, "Enum").Op("=").Parens(jen.Op("*").Id(name)).Parens(jen.Nil())
}

func (r *renderer) lookup(body *jen.Group, d *codemodel.Defined, b codemodel.EnumLookup, consts []*codemodel.EnumConstant, constable bool, table, values string) {
	v := jen.Id(b.Param)
	switch {
	case !b.Linear:
		body.Switch(v).BlockFunc(func(sw *jen.Group) {
			for _, c := range consts {
				sw.Case(jen.Lit(c.Name)).Block(jen.Return(jen.Id(enumConstName(d, c)), jen.Nil()))
			}
		})
	case constable:
		body.For(jen.List(jen.Id("_"), jen.Id("c")).Op(":=").Range().Id(table)).Block(
			jen.If(jen.Id("c").Dot("Value").Call().Op("==").Add(v)).Block(
				jen.Return(jen.Id("c"), jen.Nil()),
			),
		)
	default:
		body.For(jen.List(jen.Id("i"), jen.Id("x")).Op(":=").Range().Id(values)).Block(
			jen.If(jen.Id("x").Op("==").Add(v)).Block(
				jen.Return(jen.Id(table).Index(jen.Id("i")), jen.Nil()),
			),
		)
	}
	body.Var().Id("zero").Id(d.FlatName())
	body.Return(jen.Id("zero"), jen.Qual(runtimePkg, "NewNoMatchingConstantError").Call(
		jen.Lit(d.FullName()),
		jen.Qual("fmt", "Sprint").Call(v),
	))
}

// uniqueConstants drops repeated constant names; Go cannot declare them
// twice.
func uniqueConstants(d *codemodel.Defined) []*codemodel.EnumConstant {
	seen := make(map[string]struct{}, len(d.Constants))
	consts := make([]*codemodel.EnumConstant, 0, len(d.Constants))
	for _, c := range d.Constants {
		key := gen.Exported(c.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		consts = append(consts, c)
	}
	return consts
}

// isConstable reports whether every value can be a Go constant of the
// underlying type.
func isConstable(d *codemodel.Defined, consts []*codemodel.EnumConstant) bool {
	b, ok := d.Underlying.(codemodel.Builtin)
	if !ok || b == codemodel.Bytes || b == codemodel.Any || b == codemodel.Error {
		return false
	}
	for _, c := range consts {
		var f float64
		switch v := c.Value.(type) {
		case float32:
			f = float64(v)
		case float64:
			f = v
		default:
			continue
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return true
}

// valueCode renders a value of the values table.
func valueCode(v any) jen.Code {
	switch x := v.(type) {
	case load.QName:
		return jen.Qual(xmlPkg, "Name").Values(jen.Dict{
			jen.Id("Space"): jen.Lit(x.Namespace),
			jen.Id("Local"): jen.Lit(x.Local),
		})
	case float32:
		return floatCode(float64(x), "float32")
	case float64:
		return floatCode(x, "")
	default:
		return untyped(v)
	}
}

func floatCode(f float64, conv string) jen.Code {
	var c *jen.Statement
	switch {
	case math.IsNaN(f):
		c = jen.Qual("math", "NaN").Call()
	case math.IsInf(f, 1):
		c = jen.Qual("math", "Inf").Call(jen.Lit(1))
	case math.IsInf(f, -1):
		c = jen.Qual("math", "Inf").Call(jen.Lit(-1))
	default:
		return untyped(f)
	}
	if conv != "" {
		return jen.Id(conv).Call(c)
	}
	return c
}

func enumConstName(d *codemodel.Defined, c *codemodel.EnumConstant) string {
	return d.FlatName() + gen.Exported(c.Name)
}

func lowerFirst(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
