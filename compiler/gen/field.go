package gen

import (
	"slices"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

// Names of the attribute wildcard members.
const (
	otherAttributesField  = "OtherAttributes"
	otherAttributesGetter = "GetOtherAttributes"
)

// sortedProperties returns the properties in ascending index order,
// keeping declaration order for equal indexes.
func sortedProperties(props []*load.Property) []*load.Property {
	sorted := slices.Clone(props)
	slices.SortStableFunc(sorted, func(a, b *load.Property) int { return a.Index - b.Index })
	return sorted
}

// generateFieldDecl renders one property with its strategy, records the
// result and applies the decorations common to all strategies.
func (o *Outline) generateFieldDecl(cc *ClassOutline, prop *load.Property) *FieldOutline {
	fo := o.renderer(cc, prop).Generate(cc, prop)
	if fo == nil {
		return nil
	}
	fo.Property, fo.Class = prop, cc
	o.fields[prop] = fo
	cc.fields = append(cc.fields, fo)
	if fo.Field == nil {
		return fo
	}
	if sc := cc.superclass; sc != nil {
		fo.Overrides, _ = sc.LookupField(fo.Field.Name)
	}
	if fo.Overrides != nil && cc.Ref != cc.Impl {
		o.reconcileOverride(cc, fo)
	}
	decorate(fo.Field, prop)
	return fo
}

// reconcileOverride keeps the method set of an exposed interface valid
// when a property redeclares a superclass one. The interface embeds its
// super interface, so an accessor with the inherited signature is left to
// it, and an accessor whose signature differs is dropped from both types
// in favour of the inherited one.
func (o *Outline) reconcileOverride(cc *ClassOutline, fo *FieldOutline) {
	conflict := false
	reconcile := func(d *MethodDecl) *MethodDecl {
		if d == nil || d.Exposed == nil {
			return d
		}
		inherited, ok := cc.superclass.exposedMethod(d.Exposed.Name)
		if !ok {
			return d
		}
		cc.Ref.RemoveMethod(d.Exposed)
		d.Exposed = nil
		if codemodel.SameSignature(inherited, d.Impl) {
			return d
		}
		cc.Impl.RemoveMethod(d.Impl)
		conflict = true
		return nil
	}
	fo.Getter = reconcile(fo.Getter)
	fo.Setter = reconcile(fo.Setter)
	extra := fo.Extra[:0]
	for _, d := range fo.Extra {
		if d = reconcile(d); d != nil {
			extra = append(extra, d)
		}
	}
	fo.Extra = extra
	if conflict {
		o.errorf(qualifiedName(cc.Target.FullName(), fo.Property.Name), ErrOverrideConflict,
			fo.Property.Name, fo.Overrides.Class.Target.FullName())
	}
}

func (o *Outline) renderer(cc *ClassOutline, prop *load.Property) FieldRenderer {
	factory := o.cfg.Renderers
	if key := prop.Strategy; key != "" {
		if r, ok := factory.Lookup(key); ok {
			return r
		}
		o.errorf(qualifiedName(cc.Target.FullName(), prop.Name), ErrUnknownStrategy, key, prop.Name)
	}
	return factory.Default()
}

// decorate attaches the binding metadata of a property to its field.
func decorate(f *codemodel.Field, prop *load.Property) {
	f.Annotate(AnnotationBinding).
		Set("name", prop.Name).
		Set("kind", prop.Kind.String())
	if a := prop.Adapter; a != nil {
		if a.AttachmentRef {
			f.Annotate(AnnotationAttachmentRef)
		} else {
			f.Annotate(AnnotationAdapter).Set("value", a.Type.String())
		}
	}
	switch prop.ID {
	case load.ID:
		f.Annotate(AnnotationID)
	case load.IDRef:
		f.Annotate(AnnotationIDRef)
	}
	if prop.MimeType != "" {
		f.Annotate(AnnotationMimeType).Set("value", prop.MimeType)
	}
}

// generateAttributeWildcard adds the map holding attributes not bound to any
// property, and a getter returning it live.
func (o *Outline) generateAttributeWildcard(cc *ClassOutline) {
	typ := codemodel.Map{Key: codemodel.XMLName, Elem: codemodel.String}
	f := cc.Impl.Field(otherAttributesField, typ)
	f.Annotate(AnnotationAnyAttribute)
	cc.MethodWriter().
		Declare(otherAttributesGetter, typ).
		SetDoc(otherAttributesGetter + " returns the attributes that aren't bound to any typed property.\n\n" +
			"The map is live: changes made to it are visible on the object. It is never nil.").
		SetBody(codemodel.LiveField{Field: f})
}
