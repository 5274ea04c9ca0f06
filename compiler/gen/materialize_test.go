package gen

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/beangen/compiler/load"
)

func noRenderers(t *testing.T) *Renderers {
	t.Helper()
	r, err := NewRenderers("none", map[string]FieldRenderer{
		"none": FieldRendererFunc(func(*ClassOutline, *load.Property) *FieldOutline { return nil }),
	})
	require.NoError(t, err)
	return r
}

func TestMaterializeOnce(t *testing.T) {
	order := &load.Class{Name: "Order", Package: "example.com/p"}
	line := &load.Class{Name: "Line", Package: "example.com/p", Parent: load.ClassParent(order)}
	status := &load.Enum{Name: "Status", Package: "example.com/p"}
	m := load.NewModel([]*load.Class{order, line}, []*load.Enum{status}, nil)
	cfg := MustNewConfig(
		WithRenderers(noRenderers(t)),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	o := newOutline(m, cfg)

	// The nested class demands its container first.
	cl := o.class(line)
	require.Len(t, o.classes, 2)
	co := o.class(order)
	assert.Same(t, co, o.classes[o.classIndex[order]])
	assert.Same(t, cl, o.class(line))
	assert.Same(t, co.Ref, cl.Ref.Outer)
	assert.Len(t, o.code.Package("example.com/p").Types(), 2)
	assert.Equal(t, stateSkeleton, cl.state)

	eo := o.enum(status)
	assert.Same(t, eo, o.enum(status))
	assert.Len(t, o.enumList, 1)

	o.resolveInheritance(cl)
	assert.Equal(t, stateResolved, cl.state)
	o.resolveInheritance(cl)
	assert.Equal(t, stateResolved, cl.state)
	assert.Empty(t, o.collector.Diagnostics())
}

func TestBodyCycle(t *testing.T) {
	c := &load.Class{Name: "A", Package: "example.com/p"}
	m := load.NewModel([]*load.Class{c}, nil, nil)
	cfg := MustNewConfig(
		WithRenderers(noRenderers(t)),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	o := newOutline(m, cfg)
	cc := o.class(c)
	cc.state = stateFilling
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		o.fillClass(cc)
	}()
	a, ok := recovered.(abort)
	require.True(t, ok, "fillClass should abort, got %v", recovered)
	assert.Equal(t, Diagnostic{
		Severity: SeverityFatal,
		Location: "example.com/p.A",
		Kind:     ErrBodyCycle,
		Args:     []any{"example.com/p.A"},
	}, a.diag)
	assert.Equal(t, 1, o.collector.Count(ErrBodyCycle))
}

func TestContainerName(t *testing.T) {
	outer := &load.Class{Name: "Order"}
	e := &load.Element{Name: load.QName{Local: "order"}}
	named := &load.Element{Name: load.QName{Local: "order"}, ClassName: "OrderElement"}
	assert.Equal(t, "Order", containerName(load.ClassParent(outer), "example.com/p"))
	assert.Equal(t, "order", containerName(load.ElementParent(e), "example.com/p"))
	assert.Equal(t, "OrderElement", containerName(load.ElementParent(named), "example.com/p"))
	assert.Equal(t, "p", containerName(load.PackageParent(), "example.com/p"))
	assert.Equal(t, "po", trailingSegment("po"))
	assert.Equal(t, "v2", trailingSegment("example.com/x.v2"))
}
