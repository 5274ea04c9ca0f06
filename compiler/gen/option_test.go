package gen_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/gen"
	"github.com/syssam/beangen/compiler/load"
)

func TestOptions(t *testing.T) {
	version := int64(7)
	cfg, err := gen.NewConfig(
		gen.WithStructure(gen.InterfaceAndImpl),
		gen.WithRootClass("example.com/base.Object"),
		gen.WithRootInterface("example.com/base.Bean"),
		gen.WithSerializable(&version),
		gen.WithTarget("out"),
		gen.WithHeader("// header"),
		gen.WithFeatureNames("manifest"),
	)
	require.NoError(t, err)
	assert.Equal(t, gen.InterfaceAndImpl, cfg.Structure)
	assert.Equal(t, &codemodel.Qual{Path: "example.com/base", Name: "Object"}, cfg.RootClass)
	assert.Equal(t, &codemodel.Qual{Path: "example.com/base", Name: "Bean"}, cfg.RootInterface)
	assert.True(t, cfg.Serializable)
	assert.Equal(t, &version, cfg.SerialVersionUID)
	assert.Equal(t, "out", cfg.Target)
	assert.Equal(t, "// header", cfg.Header)
	assert.True(t, cfg.FeatureEnabled(gen.FeatureManifest.Name))
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name   string
		opt    gen.Option
		option string
	}{
		{"Structure", gen.WithStructure(gen.Structure(9)), "Structure"},
		{"Renderers", gen.WithRenderers(nil), "Renderers"},
		{"RootClassEmpty", gen.WithRootClass(""), "RootClass"},
		{"RootClassNoName", gen.WithRootClass("example.com/base."), "RootClass"},
		{"RootInterface", gen.WithRootInterface(""), "RootInterface"},
		{"Logger", gen.WithLogger(nil), "Logger"},
		{"Target", gen.WithTarget(""), "Target"},
		{"Feature", gen.WithFeatureNames("nope"), "Features"},
		{"Disabled", gen.WithoutFeatures("nope"), "Disabled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.NewConfig(tt.opt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, gen.ErrMissingConfig))
			var cerr *gen.ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.option, cerr.Option)
		})
	}
}

func TestApplyAll(t *testing.T) {
	cfg := &gen.Config{}
	err := cfg.ApplyAll(gen.WithTarget(""), gen.WithHeader("h"), gen.WithLogger(nil))
	require.Error(t, err)
	assert.Equal(t, "h", cfg.Header, "valid options still apply")
	assert.Contains(t, err.Error(), "Target")
	assert.Contains(t, err.Error(), "Logger")

	cfg = &gen.Config{}
	err = cfg.Apply(gen.WithTarget(""), gen.WithHeader("h"))
	require.Error(t, err)
	assert.Empty(t, cfg.Header, "Apply stops at the first error")
}

func TestMustNewConfig(t *testing.T) {
	assert.Panics(t, func() { gen.MustNewConfig(gen.WithTarget("")) })
	assert.NotPanics(t, func() { gen.MustNewConfig(gen.WithLogger(slog.Default())) })
}

func TestParseStructure(t *testing.T) {
	for in, want := range map[string]gen.Structure{"": gen.BeanOnly, "bean": gen.BeanOnly, "interface": gen.InterfaceAndImpl} {
		got, err := gen.ParseStructure(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := gen.ParseStructure("class")
	assert.True(t, gen.IsConfigError(err))
	assert.Equal(t, "interface", gen.InterfaceAndImpl.String())
	assert.Equal(t, "bean", gen.BeanOnly.String())
}

func TestFeatures(t *testing.T) {
	cfg := &gen.Config{}
	assert.True(t, cfg.FeatureEnabled(gen.FeatureFactory.Name))
	assert.True(t, cfg.FeatureEnabled(gen.FeatureSeeAlso.Name))
	assert.False(t, cfg.FeatureEnabled(gen.FeatureManifest.Name))
	assert.False(t, cfg.FeatureEnabled("unknown"))

	require.NoError(t, cfg.Apply(gen.WithoutFeatures(gen.FeatureFactory.Name), gen.WithFeatures(gen.FeatureManifest)))
	assert.False(t, cfg.FeatureEnabled(gen.FeatureFactory.Name))
	assert.True(t, cfg.FeatureEnabled(gen.FeatureManifest.Name))

	f, ok := gen.FeatureByName("seealso")
	require.True(t, ok)
	assert.Equal(t, gen.Beta, f.Stage)
	assert.Equal(t, "beta", f.Stage.String())
	assert.Equal(t, "unknown", gen.FeatureStage(0).String())
	_, ok = gen.FeatureByName("nope")
	assert.False(t, ok)
}

func TestRenderers(t *testing.T) {
	noop := gen.FieldRendererFunc(func(*gen.ClassOutline, *load.Property) *gen.FieldOutline { return nil })
	r, err := gen.NewRenderers("b", map[string]gen.FieldRenderer{"b": noop})
	require.NoError(t, err)
	r.Register("a", noop)
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	assert.NotNil(t, r.Default())
	_, ok := r.Lookup("a")
	assert.True(t, ok)
	_, ok = r.Lookup("c")
	assert.False(t, ok)
	assert.True(t, gen.IsConfigError(r.SetDefault("c")))
	require.NoError(t, r.SetDefault("a"))

	r.Register("b", nil)
	assert.Equal(t, []string{"a"}, r.Keys())
	r.Register("a", nil)
	assert.NotNil(t, r.Default(), "the default strategy cannot be removed")

	_, err = gen.NewRenderers("nope", nil)
	assert.True(t, gen.IsConfigError(err))
	_, err = gen.NewRenderers("b", map[string]gen.FieldRenderer{"b": nil})
	assert.True(t, gen.IsConfigError(err))
}

func TestTypes(t *testing.T) {
	m := codemodel.NewModel()
	item, err := m.Package("example.com/p").Define("Item", codemodel.KindStruct)
	require.NoError(t, err)
	color, err := m.Package("example.com/p").Define("Color", codemodel.KindEnum)
	require.NoError(t, err)

	assert.Equal(t, codemodel.Ref(codemodel.String), gen.BuiltinType("unknownType"))
	assert.Equal(t, codemodel.Ref(codemodel.Int32), gen.BuiltinType("int"))
	assert.Equal(t, codemodel.Ref(codemodel.XMLName), gen.BuiltinType("QName"))

	tests := []struct {
		name     string
		in       codemodel.Ref
		optional bool
		want     codemodel.Ref
	}{
		{"Struct", item, false, codemodel.Pointer{Elem: item}},
		{"Enum", color, false, color},
		{"OptionalEnum", color, true, codemodel.Pointer{Elem: color}},
		{"Scalar", codemodel.Int32, false, codemodel.Int32},
		{"OptionalScalar", codemodel.Int32, true, codemodel.Pointer{Elem: codemodel.Int32}},
		{"OptionalBytes", codemodel.Bytes, true, codemodel.Bytes},
		{"Slice", codemodel.Slice{Elem: codemodel.String}, true, codemodel.Slice{Elem: codemodel.String}},
		{"Qual", codemodel.Qual{Path: "time", Name: "Time"}, false, codemodel.Qual{Path: "time", Name: "Time"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gen.ValueType(tt.in, tt.optional))
		})
	}
	assert.Equal(t, codemodel.Ref(codemodel.Pointer{Elem: item}), gen.ElemType(item))
	assert.Equal(t, codemodel.Ref(codemodel.String), gen.ElemType(codemodel.String))
}
