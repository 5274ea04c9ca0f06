package codemodel_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen/compiler/codemodel"
)

func TestPackageDefine(t *testing.T) {
	m := codemodel.NewModel()
	p := m.Package("example.com/po")
	assert.Same(t, p, m.Package("example.com/po"))
	assert.Equal(t, "po", p.Name())

	order, err := p.Define("PurchaseOrder", codemodel.KindStruct)
	require.NoError(t, err)
	assert.Equal(t, 0, order.ID())
	assert.Same(t, p, order.Package())
	assert.Equal(t, "example.com/po.PurchaseOrder", order.FullName())

	t.Run("Taken", func(t *testing.T) {
		again, err := p.Define("PurchaseOrder", codemodel.KindInterface)
		require.Error(t, err)
		assert.True(t, errors.Is(err, codemodel.ErrTypeExists))
		assert.Same(t, order, again)
		assert.Equal(t, codemodel.KindStruct, again.Kind)
		assert.Len(t, p.Types(), 1)
	})

	t.Run("Nested", func(t *testing.T) {
		item, err := p.Nested(order, "Item", codemodel.KindStruct)
		require.NoError(t, err)
		assert.Equal(t, "PurchaseOrder.Item", item.LocalName())
		assert.Equal(t, "PurchaseOrderItem", item.FlatName())
		assert.Equal(t, "example.com/po.PurchaseOrder.Item", item.FullName())
		got, ok := p.Lookup("PurchaseOrder.Item")
		require.True(t, ok)
		assert.Same(t, item, got)

		// The same short name at package level is a different declaration.
		top, err := p.Define("Item", codemodel.KindStruct)
		require.NoError(t, err)
		assert.NotSame(t, item, top)
	})

	d, ok := m.Type(0)
	require.True(t, ok)
	assert.Same(t, order, d)
	_, ok = m.Type(42)
	assert.False(t, ok)
}

func TestPackageName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"example.com/po", "po"},
		{"example.com/purchase-order", "purchaseorder"},
		{"example.com/v1.2", "v12"},
		{"example.com/2024", "_2024"},
		{"", "main"},
	}
	m := codemodel.NewModel()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Package(tt.path).Name())
		})
	}
}

func TestModelPackagesSorted(t *testing.T) {
	m := codemodel.NewModel()
	m.Package("example.com/z")
	m.Package("example.com/a")
	m.Package("example.com/m")
	var paths []string
	for _, p := range m.Packages() {
		paths = append(paths, p.Path)
	}
	assert.Equal(t, []string{"example.com/a", "example.com/m", "example.com/z"}, paths)
}

func TestDefinedMembers(t *testing.T) {
	m := codemodel.NewModel()
	d, err := m.Package("example.com/po").Define("Item", codemodel.KindStruct)
	require.NoError(t, err)

	f := d.Field("Quantity", codemodel.Int32)
	assert.Same(t, d, f.Owner())
	got, ok := d.LookupField("Quantity")
	require.True(t, ok)
	assert.Same(t, f, got)

	get := d.Method("GetQuantity", codemodel.Int32)
	get.Body = codemodel.ReturnField{Field: f}
	assert.Same(t, d, get.Owner())
	set := d.Method("SetQuantity")
	set.Param("quantity", codemodel.Int32)
	assert.Len(t, set.Params, 1)
	_, ok = d.LookupMethod("SetQuantity")
	assert.True(t, ok)

	other := d.Method("SetCount")
	other.Param("count", codemodel.Int32)
	assert.True(t, codemodel.SameSignature(set, other))
	assert.False(t, codemodel.SameSignature(set, get))
	assert.True(t, d.RemoveMethod(other))
	assert.False(t, d.RemoveMethod(other))
	assert.Nil(t, other.Owner())
	_, ok = d.LookupMethod("SetCount")
	assert.False(t, ok)

	iface := codemodel.Qual{Path: "example.com/base", Name: "Object"}
	d.Implement(iface)
	d.Implement(iface)
	assert.Len(t, d.Implements, 1)
	assert.False(t, d.HasSupertype())

	c1 := d.EnumConstant("A")
	c2 := d.EnumConstant("A")
	assert.NotSame(t, c1, c2)
	assert.Len(t, d.Constants, 2)
	assert.Same(t, d, c1.Owner())
}

func TestAnnotations(t *testing.T) {
	var a codemodel.Annotatable
	typ := a.Annotate("type").Set("name", "Item").Set("propOrder", "A").Set("propOrder", "B")
	assert.Same(t, typ, a.Annotate("type"))
	assert.True(t, a.Annotated("type"))
	assert.False(t, a.Annotated("root"))

	name, ok := typ.Param("name")
	assert.True(t, ok)
	assert.Equal(t, "Item", name)
	assert.Equal(t, []string{"A", "B"}, typ.Values("propOrder"))
	assert.True(t, typ.Has("propOrder"))
	assert.False(t, typ.Has("namespace"))
}

func TestRefs(t *testing.T) {
	m := codemodel.NewModel()
	item, err := m.Package("example.com/po").Define("Item", codemodel.KindStruct)
	require.NoError(t, err)

	tests := []struct {
		ref  codemodel.Ref
		want string
	}{
		{codemodel.String, "string"},
		{codemodel.Bytes, "[]byte"},
		{codemodel.XMLName, "encoding/xml.Name"},
		{codemodel.Slice{Elem: item}, "[]example.com/po.Item"},
		{codemodel.Map{Key: codemodel.XMLName, Elem: codemodel.String}, "map[encoding/xml.Name]string"},
		{codemodel.Pointer{Elem: codemodel.Int64}, "*int64"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.String())
		})
	}

	assert.Equal(t, codemodel.Ref(item), codemodel.Underlying(codemodel.Pointer{Elem: codemodel.Pointer{Elem: item}}))
	assert.True(t, codemodel.SameType(codemodel.Slice{Elem: codemodel.String}, codemodel.Slice{Elem: codemodel.String}))
	assert.True(t, codemodel.SameType(item, item))
	assert.False(t, codemodel.SameType(item, codemodel.Qual{Path: "example.com/po", Name: "Item"}))
	assert.False(t, codemodel.SameType(nil, codemodel.String))
}
