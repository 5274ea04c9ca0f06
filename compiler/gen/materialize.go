package gen

import (
	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

// class returns the outline of a class node, creating its skeleton on first
// demand. The slot is reserved before the container is resolved, so that
// demands made while building the skeleton observe it.
func (o *Outline) class(node *load.Class) *ClassOutline {
	if i, ok := o.classIndex[node]; ok {
		return o.classes[i]
	}
	cc := &ClassOutline{
		Target:  node,
		outline: o,
		index:   len(o.classes),
		state:   stateReserved,
	}
	o.classIndex[node] = cc.index
	o.classes = append(o.classes, cc)
	o.generateClassDef(cc)
	cc.state = stateSkeleton
	return cc
}

// generateClassDef creates the exposed and implementation types of a class
// and registers the class in its package.
func (o *Outline) generateClassDef(cc *ClassOutline) {
	node := cc.Target
	loc := node.FullName()
	exposed := o.containerOf(node.Parent, node.Package, aspectExposed, cc)
	switch o.cfg.Structure {
	case InterfaceAndImpl:
		cc.Ref = o.define(exposed, loc, node.Name, codemodel.KindInterface)
		impl := o.containerOf(node.Parent, node.Package, aspectImpl, cc)
		cc.Impl = o.define(impl, loc, node.Name+ImplSuffix, codemodel.KindStruct)
		cc.Impl.Implement(cc.Ref)
	default:
		cc.Ref = o.define(exposed, loc, node.Name, codemodel.KindStruct)
		cc.Impl = cc.Ref
	}
	cc.ImplRef = cc.Impl
	if node.ImplClass != "" {
		cc.ImplRef = o.userImpl(cc)
	}
	cc.pkg = o.packageFor(cc.Ref.Package().Path)
	cc.pkg.classes = append(cc.pkg.classes, cc)
}

// userImpl declares the placeholder of a user-provided implementation. The
// placeholder is hidden and extends the generated implementation; an
// existing type of the same name is reused as is.
func (o *Outline) userImpl(cc *ClassOutline) *codemodel.Defined {
	ref := load.ParseExternalRef(cc.Target.ImplClass)
	path := ref.Path
	if path == "" {
		path = cc.Impl.Package().Path
	}
	usr, err := o.code.Package(path).Define(ref.Name, codemodel.KindStruct)
	if err != nil {
		return usr
	}
	usr.Hidden = true
	usr.Extends = cc.Impl
	return usr
}

// define declares a type in a container. A taken name is reported and the
// existing type is reused.
func (o *Outline) define(c container, loc, name string, kind codemodel.Kind) *codemodel.Defined {
	d, err := c.define(name, kind)
	if err != nil {
		o.errorf(loc, ErrClassNameCollision, d.FullName())
	}
	return d
}

type aspect uint8

const (
	aspectExposed aspect = iota
	aspectImpl
)

// container is where a declaration is placed: a package, or a type the
// declaration is nested in.
type container struct {
	pkg   *codemodel.Package
	outer *codemodel.Defined
}

func (c container) define(name string, kind codemodel.Kind) (*codemodel.Defined, error) {
	if c.outer != nil {
		return c.pkg.Nested(c.outer, name, kind)
	}
	return c.pkg.Define(name, kind)
}

// containerOf resolves the container of a declaration. self is the class
// being declared, nil for enums and elements.
func (o *Outline) containerOf(parent load.Parent, path string, a aspect, self *ClassOutline) container {
	switch parent.Kind {
	case load.ParentClass:
		outer := o.class(parent.Class)
		if outer == self || outer.Ref == nil {
			loc := parent.Class.FullName()
			if self != nil {
				loc = self.Target.FullName()
			}
			o.fatalf(loc, ErrContainmentCycle, loc)
		}
		d := outer.Ref
		if a == aspectImpl {
			d = outer.Impl
		}
		return container{pkg: d.Package(), outer: d}
	case load.ParentElement:
		eo := o.element(parent.Element)
		if eo.Impl != nil {
			return container{pkg: eo.Impl.Package(), outer: eo.Impl}
		}
		if c := parent.Element.Class; c != nil {
			return o.containerOf(load.ClassParent(c), path, a, self)
		}
	}
	return container{pkg: o.code.Package(path)}
}
