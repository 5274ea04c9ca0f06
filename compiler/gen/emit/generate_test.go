package emit_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/gen/emit"
	"github.com/syssam/beangen/compiler/gen/field"
	"github.com/syssam/beangen/compiler/load"
)

func compile(t *testing.T, m *load.Model, opts ...gen.Option) *gen.Outline {
	t.Helper()
	opts = append([]gen.Option{
		gen.WithRenderers(field.MustRegistry("")),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
	}, opts...)
	o, err := gen.Compile(m, gen.MustNewConfig(opts...))
	require.NoError(t, err)
	return o
}

func purchaseOrder(t *testing.T, opts ...gen.Option) *gen.Outline {
	t.Helper()
	m, err := load.ReadFile("../../load/testdata/po.yaml")
	require.NoError(t, err)
	return compile(t, m, opts...)
}

// source returns the rendered content of the named file.
func source(t *testing.T, files []*emit.File, name string) string {
	t.Helper()
	for _, f := range files {
		if f.Name == name {
			return f.Code.GoString()
		}
	}
	t.Fatalf("file %s not rendered", name)
	return ""
}

func fileNames(files []*emit.File) []string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	return names
}

func TestFiles(t *testing.T) {
	g := emit.NewGenerator(purchaseOrder(t), t.TempDir()).WithBase("example.com/po")
	files := g.Files()
	assert.Equal(t, []string{"us_state.go", "purchase_order_type.go", "us_address.go", "item.go", "comment.go", "factory.go"}, fileNames(files))
	for _, f := range files {
		assert.Equal(t, ".", f.Dir)
		assert.Equal(t, "example.com/po", f.Package)
	}

	t.Run("Struct", func(t *testing.T) {
		src := source(t, files, "purchase_order_type.go")
		assert.Contains(t, src, "// Code generated by beangen. DO NOT EDIT.")
		assert.Contains(t, src, "package po")
		assert.Contains(t, src, "// PurchaseOrderType is a purchase order.")
		assert.Contains(t, src, "//beangen:type name=PurchaseOrderType propOrder=ShipTo,BillTo,Comment,Items\n")
		assert.Contains(t, src, "type PurchaseOrderType struct {")
		assert.Contains(t, src, "`xml:\"urn:po purchaseOrder\"`")
		assert.Contains(t, src, "`xml:\"shipTo,omitempty\"`")
		assert.Contains(t, src, "`xml:\"orderDate,attr\"`")
		assert.Contains(t, src, "func (p *PurchaseOrderType) GetShipTo() *USAddress {\n\treturn p.ShipTo\n}")
		assert.Contains(t, src, "func (p *PurchaseOrderType) SetShipTo(shipTo *USAddress) {\n\tp.ShipTo = shipTo\n}")
		assert.Contains(t, src, "func (p *PurchaseOrderType) GetItems() *[]*Item {\n\treturn &p.Items\n}")
		assert.NotContains(t, src, "SetItems")
	})

	t.Run("Attributes", func(t *testing.T) {
		src := source(t, files, "item.go")
		assert.Contains(t, src, "`bind:\"id\" xml:\"partNum,attr\"`")
		assert.Contains(t, src, "//beangen:type name=Item propOrder=\"\"\n")
	})

	t.Run("Enum", func(t *testing.T) {
		src := source(t, files, "us_state.go")
		assert.Contains(t, src, "type USState string")
		assert.Contains(t, src, "USStateAK USState = \"AK\"")
		assert.Contains(t, src, "func (e USState) Value() string {\n\treturn string(e)\n}")
		assert.Contains(t, src, "func USStateFromValue(v string) (USState, error) {\n\tswitch v {")
		assert.Contains(t, src, "case \"CA\":\n\t\treturn USStateCA, nil")
		assert.Contains(t, src, "beangen.NewNoMatchingConstantError(\"example.com/po.USState\", fmt.Sprint(v))")
		assert.Contains(t, src, "var _ beangen.Enum = (*USState)(nil)")
	})

	t.Run("Element", func(t *testing.T) {
		src := source(t, files, "comment.go")
		assert.Contains(t, src, "type Comment struct {")
		assert.Contains(t, src, "`xml:\"urn:po comment\"`")
		assert.Contains(t, src, "`xml:\",chardata\"`")
	})

	t.Run("Factory", func(t *testing.T) {
		src := source(t, files, "factory.go")
		assert.Contains(t, src, "func NewPurchaseOrderType() *PurchaseOrderType {\n\treturn &PurchaseOrderType{}\n}")
		assert.Contains(t, src, "func NewComment(value string) *Comment {")
		assert.Contains(t, src, "return &Comment{Value: value}")
	})
}

func TestRenderInterface(t *testing.T) {
	version := int64(42)
	c := &load.Class{Name: "Item", Package: "example.com/p", Properties: []*load.Property{{Name: "name"}}}
	o := compile(t, load.NewModel([]*load.Class{c}, nil, nil),
		gen.WithStructure(gen.InterfaceAndImpl),
		gen.WithSerializable(&version),
	)
	files := emit.NewGenerator(o, t.TempDir()).Files()
	assert.Equal(t, []string{"item.go", "item_impl.go", "factory.go"}, fileNames(files))

	src := source(t, files, "item.go")
	assert.Contains(t, src, "type Item interface {")
	assert.Contains(t, src, "GetName() string")
	assert.Contains(t, src, "SetName(name string)")

	src = source(t, files, "item_impl.go")
	assert.Contains(t, src, "// ItemImpl is the implementation of Item.")
	assert.Contains(t, src, "type ItemImpl struct {")
	assert.Contains(t, src, "const ItemImplSerialVersionUID int64 = 42")
	assert.Contains(t, src, "var _ Item = (*ItemImpl)(nil)")
	assert.Contains(t, src, "var _ beangen.Serializable = (*ItemImpl)(nil)")
	assert.Contains(t, src, "func (i *ItemImpl) SerialVersionUID() int64 {\n\treturn ItemImplSerialVersionUID\n}")
	assert.Contains(t, src, "//beangen:serializable")

	src = source(t, files, "factory.go")
	assert.Contains(t, src, "func NewItem() Item {\n\treturn &ItemImpl{}\n}")
}

func TestRenderOverride(t *testing.T) {
	base := &load.Class{Name: "Base", Package: "example.com/p", Properties: []*load.Property{{Name: "code"}}}
	derived := &load.Class{Name: "Derived", Package: "example.com/p", Base: base, Properties: []*load.Property{
		{Name: "code", Type: load.TypeRef{Builtin: "int"}},
	}}
	o, err := gen.Compile(load.NewModel([]*load.Class{base, derived}, nil, nil), gen.MustNewConfig(
		gen.WithRenderers(field.MustRegistry("")),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
		gen.WithStructure(gen.InterfaceAndImpl),
	))
	require.True(t, gen.IsCompileError(err))
	files := emit.NewGenerator(o, t.TempDir()).Files()

	src := source(t, files, "derived.go")
	assert.Contains(t, src, "type Derived interface {\n\tBase")
	assert.NotContains(t, src, "GetCode(")
	assert.Contains(t, source(t, files, "base.go"), "GetCode() string")
}

func TestRenderEnums(t *testing.T) {
	size := &load.Enum{Name: "Size", Package: "example.com/p", Base: load.BaseInt, Members: []*load.EnumMember{
		{Name: "ONE", Lexical: "1"},
		{Name: "TWO", Lexical: "2"},
	}}
	ratio := &load.Enum{Name: "Ratio", Package: "example.com/p", Base: load.BaseDouble, Members: []*load.EnumMember{
		{Name: "INF", Lexical: "INF"},
		{Name: "HALF", Lexical: "0.5"},
	}}
	dup := &load.Enum{Name: "Dup", Package: "example.com/p", Members: []*load.EnumMember{
		{Name: "A", Lexical: "a"},
		{Name: "A", Lexical: "b"},
	}}
	cased := &load.Enum{Name: "Cased", Package: "example.com/p", Members: []*load.EnumMember{
		{Name: "a", Lexical: "a"},
		{Name: "A", Lexical: "A"},
	}}
	o, err := gen.Compile(load.NewModel(nil, []*load.Enum{size, ratio, dup, cased}, nil), gen.MustNewConfig(
		gen.WithRenderers(field.MustRegistry("")),
		gen.WithLogger(slog.New(slog.DiscardHandler)),
	))
	require.True(t, gen.IsCompileError(err), "duplicate constant names are reported")
	require.NotNil(t, o)
	files := emit.NewGenerator(o, t.TempDir()).Files()

	t.Run("Constable", func(t *testing.T) {
		src := source(t, files, "size.go")
		assert.Contains(t, src, "type Size int32")
		assert.Contains(t, src, "SizeONE Size = 1")
		assert.Contains(t, src, "var sizeConstants = []Size{SizeONE, SizeTWO}")
		assert.Contains(t, src, "for _, c := range sizeConstants {\n\t\tif c.Value() == v {")
		assert.Contains(t, src, "return fmt.Sprint(e.Value())")
	})

	t.Run("Ordinal", func(t *testing.T) {
		src := source(t, files, "ratio.go")
		assert.Contains(t, src, "type Ratio int")
		assert.Contains(t, src, "RatioINF Ratio = iota")
		assert.Contains(t, src, "var ratioValues = []float64{math.Inf(1), 0.5}")
		assert.Contains(t, src, "return ratioValues[e]")
		assert.Contains(t, src, "return ratioConstants[i], nil")
	})

	t.Run("Duplicates", func(t *testing.T) {
		src := source(t, files, "dup.go")
		assert.Equal(t, 1, strings.Count(src, "DupA Dup ="))
		assert.Contains(t, src, "//beangen:enumvalue value=a")

		src = source(t, files, "cased.go")
		assert.Equal(t, 1, strings.Count(src, "CasedA Cased ="))
	})
}

func TestDir(t *testing.T) {
	o := compile(t, load.NewModel(nil, nil, nil))
	g := emit.NewGenerator(o, "out")
	assert.Equal(t, filepath.FromSlash("example.com/po"), g.Dir("example.com/po"))
	g.WithBase("example.com/po/")
	assert.Equal(t, ".", g.Dir("example.com/po"))
	assert.Equal(t, "items", g.Dir("example.com/po/items"))
	assert.Equal(t, filepath.FromSlash("example.com/pox"), g.Dir("example.com/pox"))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	run := uuid.New()
	o := purchaseOrder(t, gen.WithFeatureNames(gen.FeatureManifest.Name), gen.WithHeader("Code generated for tests. DO NOT EDIT."))
	g := emit.NewGenerator(o, dir).WithBase("example.com/po").WithWorkers(2).WithRunID(run)
	require.NoError(t, g.Generate(context.Background()))
	assert.Equal(t, run, g.RunID())

	m := g.Metrics()
	assert.Equal(t, 6, m.FilesGenerated)
	assert.Positive(t, m.TotalBytes)

	data, err := os.ReadFile(filepath.Join(dir, "purchase_order_type.go"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// Code generated for tests. DO NOT EDIT."))
	assert.Contains(t, string(data), "\"encoding/xml\"")

	man, err := emit.ReadManifest(filepath.Join(dir, emit.ManifestName))
	require.NoError(t, err)
	assert.Equal(t, run.String(), man.Run)
	p, ok := man.Package("example.com/po")
	require.True(t, ok)
	assert.Equal(t, []string{"comment.go", "factory.go", "item.go", "purchase_order_type.go", "us_address.go", "us_state.go"}, p.Files)
}

func TestGenerateWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, emit.NewGenerator(purchaseOrder(t), dir).Generate(context.Background()))
	_, err := os.Stat(filepath.Join(dir, emit.ManifestName))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "example.com", "po", "item.go"))
	assert.NoError(t, err, "packages outside the base keep their import path")
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := emit.NewGenerator(purchaseOrder(t), t.TempDir()).WithWorkers(1).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateTarget(t *testing.T) {
	err := emit.Generate(context.Background(), purchaseOrder(t))
	assert.True(t, gen.IsConfigError(err))

	dir := t.TempDir()
	require.NoError(t, emit.Generate(context.Background(), purchaseOrder(t, gen.WithTarget(dir))))
	_, err = os.Stat(filepath.Join(dir, "example.com", "po", "factory.go"))
	assert.NoError(t, err)
}
