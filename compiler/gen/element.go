package gen

import (
	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

const elementValueField = "Value"

// element returns the outline of an element node. Standalone elements get
// a wrapper struct holding their content; elements bound to a class only
// get an outline.
func (o *Outline) element(node *load.Element) *ElementOutline {
	if eo, ok := o.elements[node]; ok {
		return eo
	}
	eo := &ElementOutline{Target: node}
	o.elements[node] = eo
	o.elemList = append(o.elemList, eo)
	if !node.HasClass() {
		eo.pkg = o.packageFor(node.Package)
		return eo
	}
	c := o.containerOf(node.Parent, node.Package, aspectImpl, nil)
	eo.Impl = o.define(c, node.FullName(), node.ClassName, codemodel.KindStruct)
	eo.pkg = o.packageFor(eo.Impl.Package().Path)
	eo.pkg.elements = append(eo.pkg.elements, eo)
	eo.Value = eo.Impl.Field(elementValueField, ValueType(o.TypeOf(node.Content), false))
	eo.Value.Annotate(AnnotationBinding).
		Set("name", node.Name.Local).
		Set("kind", "value")
	return eo
}

// fillElement annotates a wrapper once package aggregates are known, and
// adds its factory entry.
func (o *Outline) fillElement(eo *ElementOutline) {
	if eo.filled {
		return
	}
	eo.filled = true
	if eo.Impl == nil {
		return
	}
	node := eo.Target
	root := eo.Impl.Annotate(AnnotationRootElement).Set("name", node.Name.Local)
	if node.Name.Namespace != eo.pkg.MostUsedNamespace() {
		root.Set("namespace", node.Name.Namespace)
	}
	if node.Doc != "" {
		eo.Impl.Doc = node.Doc
	}
	o.populateElementFactory(eo)
}
