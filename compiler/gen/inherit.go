package gen

import (
	"github.com/syssam/beangen/compiler/codemodel"
)

// serialVersionField is the name of the version tag constant.
const serialVersionField = "serialVersionUID"

// resolveInheritance wires the supertype of a class, resolving its base
// first. Re-entering a class that is being resolved is an inheritance
// cycle and aborts the compile.
func (o *Outline) resolveInheritance(cc *ClassOutline) {
	switch cc.state {
	case stateResolving:
		o.fatalf(cc.Target.FullName(), ErrInheritanceCycle, cc.Target.FullName())
	case stateResolved, stateFilling, stateFilled:
		return
	}
	cc.state = stateResolving
	node := cc.Target
	switch {
	case node.Base != nil:
		sc := o.class(node.Base)
		o.resolveInheritance(sc)
		o.extend(cc, sc)
	case node.BaseRef != nil:
		cc.Impl.Extends = codemodel.Qual{Path: node.BaseRef.Path, Name: node.BaseRef.Name}
	default:
		if r := o.cfg.RootClass; r != nil && !cc.Impl.HasSupertype() {
			cc.Impl.Extends = *r
		}
		if r := o.cfg.RootInterface; r != nil {
			cc.Ref.Implement(*r)
		}
	}
	if o.cfg.Serializable || node.Serializable {
		o.serializable(cc)
	}
	o.checkReservedName(cc)
	cc.state = stateResolved
}

// extend makes sc the supertype of cc. Implementation structs embed the
// super implementation; exposed interfaces embed the super interface.
func (o *Outline) extend(cc, sc *ClassOutline) {
	cc.superclass = sc
	cc.Impl.Extends = sc.Impl
	if cc.Ref != cc.Impl {
		cc.Ref.Extends = sc.Ref
	}
}

// serializable marks a class and attaches the version tag, when one is
// known. The per-class version wins over the configured one.
func (o *Outline) serializable(cc *ClassOutline) {
	cc.Impl.Annotate(AnnotationSerializable)
	version := cc.Target.SerialVersion
	if version == nil {
		version = o.cfg.SerialVersionUID
	}
	if version == nil {
		return
	}
	f := cc.Impl.Field(serialVersionField, codemodel.Int64)
	f.Const = true
	f.Value = *version
	m := cc.Impl.Method("SerialVersionUID", codemodel.Int64)
	m.Body = codemodel.ReturnField{Field: f}
	m.Doc = "SerialVersionUID returns the serialization version of the type."
	cc.Impl.Implement(SerializableRef)
}
