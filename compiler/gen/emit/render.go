package emit

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
)

const (
	runtimePkg = "github.com/syssam/beangen"
	xmlPkg     = "encoding/xml"
	// directivePrefix starts the comment lines carrying annotations.
	directivePrefix = "//beangen:"
)

// typeCode returns the jennifer code of a type reference.
func typeCode(r codemodel.Ref) *jen.Statement {
	switch t := r.(type) {
	case codemodel.Builtin:
		switch t {
		case codemodel.Bytes:
			return jen.Index().Byte()
		case codemodel.Any:
			return jen.Any()
		case codemodel.Error:
			return jen.Error()
		default:
			return jen.Id(string(t))
		}
	case codemodel.Qual:
		if t.Path == "" {
			return jen.Id(t.Name)
		}
		return jen.Qual(t.Path, t.Name)
	case codemodel.Slice:
		return jen.Index().Add(typeCode(t.Elem))
	case codemodel.Map:
		return jen.Map(typeCode(t.Key)).Add(typeCode(t.Elem))
	case codemodel.Pointer:
		return jen.Op("*").Add(typeCode(t.Elem))
	case *codemodel.Defined:
		return jen.Qual(t.Package().Path, t.FlatName())
	default:
		return jen.Any()
	}
}

// signature appends the parameters and results of m to s.
func signature(s *jen.Statement, m *codemodel.Method) *jen.Statement {
	params := make([]jen.Code, len(m.Params))
	for i, p := range m.Params {
		params[i] = jen.Id(p.Name).Add(typeCode(p.Type))
	}
	s.Params(params...)
	switch len(m.Results) {
	case 0:
	case 1:
		s.Add(typeCode(m.Results[0]))
	default:
		results := make([]jen.Code, len(m.Results))
		for i, r := range m.Results {
			results[i] = typeCode(r)
		}
		s.Params(results...)
	}
	return s
}

// docComment writes doc line by line, or fallback when doc is empty.
func docComment(g *jen.Group, doc, fallback string) {
	if doc == "" {
		doc = fallback
	}
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		if line == "" {
			g.Comment("//")
			continue
		}
		g.Comment(line)
	}
}

// directives writes one comment line per annotation not in skip:
//
//	//beangen:type name=PurchaseOrderType propOrder=ShipTo,BillTo
func directives(g *jen.Group, annotations []*codemodel.Annotation, skip ...string) {
	for _, a := range annotations {
		if slices.Contains(skip, a.Name) {
			continue
		}
		g.Comment(directive(a))
	}
}

func directive(a *codemodel.Annotation) string {
	var b strings.Builder
	b.WriteString(directivePrefix)
	b.WriteString(a.Name)
	var names []string
	values := make(map[string][]string)
	for _, p := range a.Params {
		if _, ok := values[p.Name]; !ok {
			names = append(names, p.Name)
		}
		if p.Value != "" {
			values[p.Name] = append(values[p.Name], p.Value)
		} else if values[p.Name] == nil {
			values[p.Name] = []string{}
		}
	}
	for _, name := range names {
		b.WriteString(" ")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(quoteDirective(strings.Join(values[name], ",")))
	}
	return b.String()
}

func quoteDirective(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return strconv.Quote(s)
	}
	return s
}

// renderer renders the defined types of one package.
type renderer struct {
	outline *gen.Outline
	pkg     *gen.PackageOutline
}

func (r *renderer) namespace() string {
	if r.pkg == nil {
		return ""
	}
	return r.pkg.MostUsedNamespace()
}

// define renders a defined type into g.
func (r *renderer) define(g *jen.Group, d *codemodel.Defined) {
	switch d.Kind {
	case codemodel.KindInterface:
		r.iface(g, d)
	case codemodel.KindEnum:
		r.enum(g, d)
	default:
		r.structure(g, d)
	}
}

func (r *renderer) iface(g *jen.Group, d *codemodel.Defined) {
	name := d.FlatName()
	docComment(g, d.Doc, fmt.Sprintf("%s is the interface of the %s bean.", name, name))
	directives(g, d.Annotations)
	g.Type().Id(name).InterfaceFunc(func(ig *jen.Group) {
		if d.Extends != nil {
			ig.Add(typeCode(d.Extends))
		}
		for _, i := range d.Implements {
			ig.Add(typeCode(i))
		}
		for _, m := range d.Methods {
			docComment(ig, m.Doc, "")
			ig.Add(signature(jen.Id(m.Name), m))
		}
	})
}

func (r *renderer) structure(g *jen.Group, d *codemodel.Defined) {
	name := d.FlatName()
	docComment(g, d.Doc, fmt.Sprintf("%s is a generated bean.", name))
	directives(g, d.Annotations, gen.AnnotationRootElement)
	g.Type().Id(name).StructFunc(func(sg *jen.Group) {
		if root, ok := d.Annotation(gen.AnnotationRootElement); ok {
			sg.Id("XMLName").Qual(xmlPkg, "Name").Tag(map[string]string{"xml": r.rootTag(root)})
		}
		if d.Extends != nil {
			sg.Add(typeCode(d.Extends))
		}
		for _, f := range d.Fields {
			if f.Const {
				continue
			}
			docComment(sg, f.Doc, "")
			sg.Id(f.Name).Add(typeCode(f.Type)).Tag(fieldTags(f))
		}
	})
	for _, f := range d.Fields {
		if f.Const {
			g.Const().Id(constName(d, f)).Add(typeCode(f.Type)).Op("=").Add(untyped(f.Value))
		}
	}
	for _, i := range d.Implements {
		g.Var().Id("_").Add(typeCode(i)).Op("=").Parens(jen.Op("*").Id(name)).Parens(jen.Nil())
	}
	recv := gen.Receiver(name)
	for _, m := range d.Methods {
		if m.Body == nil {
			continue
		}
		docComment(g, m.Doc, "")
		fn := g.Func().Params(jen.Id(recv).Op("*").Id(name))
		signature(fn.Id(m.Name), m).Block(r.body(recv, m.Body)...)
	}
}

// rootTag returns the xml tag of the XMLName field: "namespace local".
func (r *renderer) rootTag(root *codemodel.Annotation) string {
	local, _ := root.Param("name")
	ns, ok := root.Param("namespace")
	if !ok {
		ns = r.namespace()
	}
	if ns == "" {
		return local
	}
	return ns + " " + local
}

// constName is the package-level name of a constant field.
func constName(d *codemodel.Defined, f *codemodel.Field) string {
	return d.FlatName() + gen.Pascal(f.Name)
}

// fieldTags maps field annotations onto struct tags.
func fieldTags(f *codemodel.Field) map[string]string {
	tags := make(map[string]string)
	if f.Annotated(gen.AnnotationAnyAttribute) {
		tags["xml"] = "-"
		return tags
	}
	if b, ok := f.Annotation(gen.AnnotationBinding); ok {
		name, _ := b.Param("name")
		kind, _ := b.Param("kind")
		omit := ""
		if nillable(f.Type) {
			omit = ",omitempty"
		}
		switch kind {
		case "attribute":
			tags["xml"] = name + ",attr" + omit
		case "wildcard":
			tags["xml"] = ",any"
		case "value":
			if d, ok := codemodel.Underlying(f.Type).(*codemodel.Defined); ok && d.Kind != codemodel.KindEnum {
				tags["xml"] = ",any"
			} else {
				tags["xml"] = ",chardata"
			}
		default:
			tags["xml"] = name + omit
		}
	}
	var bind []string
	for _, a := range f.Annotations {
		switch a.Name {
		case gen.AnnotationID, gen.AnnotationIDRef, gen.AnnotationAttachmentRef:
			bind = append(bind, a.Name)
		case gen.AnnotationAdapter, gen.AnnotationMimeType:
			v, _ := a.Param("value")
			bind = append(bind, a.Name+"="+v)
		}
	}
	if len(bind) > 0 {
		sort.Strings(bind)
		tags["bind"] = strings.Join(bind, ";")
	}
	return tags
}

func nillable(r codemodel.Ref) bool {
	switch t := r.(type) {
	case codemodel.Pointer, codemodel.Slice, codemodel.Map:
		return true
	case codemodel.Builtin:
		return t == codemodel.Bytes || t == codemodel.Any
	case *codemodel.Defined:
		return t.Kind == codemodel.KindInterface
	}
	return false
}

// untyped renders a constant value without a conversion, so that it can
// initialize a constant of a named type.
func untyped(v any) jen.Code {
	switch x := v.(type) {
	case int8:
		return jen.Id(strconv.FormatInt(int64(x), 10))
	case int16:
		return jen.Id(strconv.FormatInt(int64(x), 10))
	case int32:
		return jen.Id(strconv.FormatInt(int64(x), 10))
	case int64:
		return jen.Id(strconv.FormatInt(x, 10))
	case uint8:
		return jen.Id(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return jen.Id(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return jen.Id(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return jen.Id(strconv.FormatUint(x, 10))
	case float32:
		return jen.Id(strconv.FormatFloat(float64(x), 'g', -1, 32))
	case float64:
		return jen.Id(strconv.FormatFloat(x, 'g', -1, 64))
	default:
		return jen.Lit(v)
	}
}

// body renders a method body with the receiver named recv.
func (r *renderer) body(recv string, b codemodel.Body) []jen.Code {
	field := func(f *codemodel.Field) *jen.Statement { return jen.Id(recv).Dot(f.Name) }
	switch b := b.(type) {
	case codemodel.ReturnField:
		if b.Field.Const {
			return []jen.Code{jen.Return(jen.Id(constName(b.Field.Owner(), b.Field)))}
		}
		return []jen.Code{jen.Return(field(b.Field))}
	case codemodel.SetField:
		return []jen.Code{field(b.Field).Op("=").Id(b.Param)}
	case codemodel.LiveField:
		if _, ok := b.Field.Type.(codemodel.Slice); ok {
			return []jen.Code{jen.Return(jen.Op("&").Add(field(b.Field)))}
		}
		return []jen.Code{
			jen.If(field(b.Field).Op("==").Nil()).Block(
				field(b.Field).Op("=").Make(typeCode(b.Field.Type)),
			),
			jen.Return(field(b.Field)),
		}
	case codemodel.IsSetField:
		if _, ok := b.Field.Type.(codemodel.Slice); ok {
			return []jen.Code{jen.Return(jen.Len(field(b.Field)).Op("!=").Lit(0))}
		}
		return []jen.Code{jen.Return(field(b.Field).Op("!=").Nil())}
	case codemodel.UnsetField:
		return []jen.Code{field(b.Field).Op("=").Nil()}
	default:
		panic(fmt.Sprintf("emit: unexpected method body %T", b))
	}
}

// factory renders the package-level constructors.
func (r *renderer) factory(g *jen.Group, funcs []*codemodel.Method) {
	for _, fn := range funcs {
		docComment(g, fn.Doc, "")
		var body jen.Code
		switch b := fn.Body.(type) {
		case codemodel.NewInstance:
			body = jen.Return(jen.Op("&").Add(typeCode(b.Type)).Values())
		case codemodel.WrapValue:
			body = jen.Return(jen.Op("&").Add(typeCode(b.Type)).Values(jen.Dict{
				jen.Id(b.Field.Name): jen.Id(b.Param),
			}))
		default:
			panic(fmt.Sprintf("emit: unexpected factory body %T", b))
		}
		signature(g.Func().Id(fn.Name), fn).Block(body)
	}
}
