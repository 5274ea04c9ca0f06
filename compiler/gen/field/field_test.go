package field_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/gen/field"
	"github.com/syssam/beangen/compiler/load"
)

func compileClass(t *testing.T, def string, props ...*load.Property) *gen.ClassOutline {
	t.Helper()
	c := &load.Class{Name: "Order", Package: "example.com/p", Properties: props}
	cfg := gen.MustNewConfig(
		gen.WithRenderers(field.MustRegistry(def)),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
	)
	o, err := gen.Compile(load.NewModel([]*load.Class{c}, nil, nil), cfg)
	require.NoError(t, err)
	cc, ok := o.Class(c)
	require.True(t, ok)
	return cc
}

func TestRegistry(t *testing.T) {
	r, err := field.Registry("")
	require.NoError(t, err)
	assert.Equal(t, []string{field.Default, field.IsSet, field.List, field.Single}, r.Keys())

	_, err = field.Registry("bogus")
	require.Error(t, err)
	assert.True(t, gen.IsConfigError(err))
	assert.Panics(t, func() { field.MustRegistry("bogus") })
}

func TestSingle(t *testing.T) {
	cc := compileClass(t, "", &load.Property{Name: "quantity", Type: load.TypeRef{Builtin: "int"}})
	require.Len(t, cc.Fields(), 1)
	fo := cc.Fields()[0]
	assert.Equal(t, "Quantity", fo.Field.Name)
	assert.Equal(t, codemodel.Ref(codemodel.Int32), fo.Field.Type)
	assert.Equal(t, codemodel.Ref(codemodel.Int32), fo.RawType)

	require.NotNil(t, fo.Getter)
	assert.Equal(t, "GetQuantity", fo.Getter.Impl.Name)
	assert.Equal(t, codemodel.Body(codemodel.ReturnField{Field: fo.Field}), fo.Getter.Impl.Body)
	assert.Nil(t, fo.Getter.Exposed, "bean classes have no interface")

	require.NotNil(t, fo.Setter)
	set := fo.Setter.Impl
	assert.Equal(t, "SetQuantity", set.Name)
	require.Len(t, set.Params, 1)
	assert.Equal(t, "quantity", set.Params[0].Name)
	assert.Equal(t, codemodel.Body(codemodel.SetField{Field: fo.Field, Param: "quantity"}), set.Body)
	assert.Empty(t, fo.Extra)
}

func TestOptionalSingle(t *testing.T) {
	cc := compileClass(t, "", &load.Property{Name: "comment", Optional: true})
	fo := cc.Fields()[0]
	assert.Equal(t, codemodel.Ref(codemodel.Pointer{Elem: codemodel.String}), fo.Field.Type)
	assert.Equal(t, []codemodel.Ref{fo.Field.Type}, fo.Getter.Impl.Results)
}

func TestList(t *testing.T) {
	item := &load.Class{Name: "Item", Package: "example.com/p"}
	cc := compileClass(t, "",
		&load.Property{Name: "item", Type: load.TypeRef{Class: item}, Collection: true},
		&load.Property{Name: "tag", Collection: true},
	)
	require.Len(t, cc.Fields(), 2)
	items, tags := cc.Fields()[0], cc.Fields()[1]

	assert.Equal(t, "Items", items.Field.Name)
	elem, ok := items.Field.Type.(codemodel.Slice)
	require.True(t, ok)
	ptr, ok := elem.Elem.(codemodel.Pointer)
	require.True(t, ok, "struct elements are held by pointer")
	assert.Equal(t, "Item", ptr.Elem.(*codemodel.Defined).Name)

	assert.Equal(t, "Tags", tags.Field.Name)
	assert.Equal(t, codemodel.Ref(codemodel.Slice{Elem: codemodel.String}), tags.Field.Type)
	require.NotNil(t, tags.Getter)
	assert.Equal(t, "GetTags", tags.Getter.Impl.Name)
	assert.Equal(t, []codemodel.Ref{codemodel.Pointer{Elem: tags.Field.Type}}, tags.Getter.Impl.Results)
	assert.Equal(t, codemodel.Body(codemodel.LiveField{Field: tags.Field}), tags.Getter.Impl.Body)
	assert.Nil(t, tags.Setter, "lists have no setter")
}

func TestIsSet(t *testing.T) {
	cc := compileClass(t, "",
		&load.Property{Name: "count", Type: load.TypeRef{Builtin: "int"}, Strategy: field.IsSet},
		&load.Property{Name: "tag", Collection: true, Strategy: field.IsSet},
	)
	count, tags := cc.Fields()[0], cc.Fields()[1]
	assert.Equal(t, codemodel.Ref(codemodel.Pointer{Elem: codemodel.Int32}), count.Field.Type)
	require.Len(t, count.Extra, 2)
	assert.Equal(t, "IsSetCount", count.Extra[0].Impl.Name)
	assert.Equal(t, codemodel.Body(codemodel.IsSetField{Field: count.Field}), count.Extra[0].Impl.Body)
	assert.Equal(t, "UnsetCount", count.Extra[1].Impl.Name)
	assert.Equal(t, codemodel.Body(codemodel.UnsetField{Field: count.Field}), count.Extra[1].Impl.Body)

	require.Len(t, tags.Extra, 2)
	assert.Equal(t, "IsSetTags", tags.Extra[0].Impl.Name)
	assert.Equal(t, "UnsetTags", tags.Extra[1].Impl.Name)
	assert.Nil(t, tags.Setter)
}

func TestStrategyOverride(t *testing.T) {
	cc := compileClass(t, field.IsSet,
		&load.Property{Name: "a"},
		&load.Property{Name: "b", Strategy: field.Single},
		&load.Property{Name: "c", Collection: true, Strategy: field.Single},
	)
	a, b, c := cc.Fields()[0], cc.Fields()[1], cc.Fields()[2]
	assert.Len(t, a.Extra, 2, "registry default applies")
	assert.Empty(t, b.Extra)
	assert.Equal(t, "C", c.Field.Name, "single strategy does not pluralize")
	assert.NotNil(t, c.Setter)
}

func TestInterfaceAccessors(t *testing.T) {
	c := &load.Class{Name: "Order", Package: "example.com/p", Properties: []*load.Property{{Name: "id"}}}
	cfg := gen.MustNewConfig(
		gen.WithRenderers(field.MustRegistry("")),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
		gen.WithStructure(gen.InterfaceAndImpl),
	)
	o, err := gen.Compile(load.NewModel([]*load.Class{c}, nil, nil), cfg)
	require.NoError(t, err)
	cc, _ := o.Class(c)
	fo := cc.Fields()[0]
	assert.Equal(t, "ID", fo.Field.Name)
	assert.Same(t, cc.Impl, fo.Field.Owner())
	require.NotNil(t, fo.Getter.Exposed)
	assert.Same(t, cc.Ref, fo.Getter.Exposed.Owner())
	assert.Nil(t, fo.Getter.Exposed.Body)
	assert.Equal(t, "id", fo.Setter.Exposed.Params[0].Name)
}
