package gen

import (
	"fmt"

	"github.com/syssam/beangen/compiler/codemodel"
)

// populateClassFactory adds the constructor of a class to its package.
// Under InterfaceAndImpl the constructor returns the interface.
func (o *Outline) populateClassFactory(cc *ClassOutline) {
	if !o.cfg.FeatureEnabled(FeatureFactory.Name) {
		return
	}
	result := codemodel.Ref(codemodel.Pointer{Elem: cc.ImplRef})
	if cc.Ref.Kind == codemodel.KindInterface {
		result = cc.Ref
	}
	name := "New" + cc.Ref.FlatName()
	fn := cc.pkg.pkg.Func(name, result)
	fn.Body = codemodel.NewInstance{Type: cc.ImplRef}
	fn.Doc = fmt.Sprintf("%s returns a new instance of %s.", name, cc.Ref.FlatName())
	cc.pkg.factory = append(cc.pkg.factory, fn)
}

// populateElementFactory adds the constructor of an element wrapper,
// taking the element content.
func (o *Outline) populateElementFactory(eo *ElementOutline) {
	if !o.cfg.FeatureEnabled(FeatureFactory.Name) {
		return
	}
	name := "New" + eo.Impl.FlatName()
	fn := eo.pkg.pkg.Func(name, codemodel.Pointer{Elem: eo.Impl})
	fn.Param("value", eo.Value.Type)
	fn.Body = codemodel.WrapValue{Type: eo.Impl, Field: eo.Value, Param: "value"}
	fn.Doc = fmt.Sprintf("%s returns a new %s element holding value.", name, eo.Target.Name.Local)
	eo.pkg.factory = append(eo.pkg.factory, fn)
}
