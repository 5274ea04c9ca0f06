package gen

import (
	"fmt"
	"time"

	"github.com/syssam/beangen/compiler/codemodel"
	"github.com/syssam/beangen/compiler/load"
)

// abort is the panic value carrying a fatal diagnostic up to Compile.
type abort struct {
	diag Diagnostic
}

// Compile turns the model graph into a code model.
//
// On a fatal diagnostic Compile returns a nil outline and an error matching
// ErrFatal. When only recoverable diagnostics were reported, the complete
// outline is returned together with a *CompileError; the caller decides
// whether to emit it.
func Compile(m *load.Model, cfg *Config) (out *Outline, err error) {
	switch {
	case m == nil:
		return nil, NewConfigError("Model", nil, "model cannot be nil")
	case cfg == nil:
		return nil, NewConfigError("Config", nil, "config cannot be nil")
	case cfg.Renderers == nil:
		return nil, NewConfigError("Renderers", nil, "a field renderer factory is required")
	case cfg.Renderers.Default() == nil:
		return nil, NewConfigError("Renderers", nil, "the field renderer factory has no default strategy")
	}
	o := newOutline(m, cfg)
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		out, err = nil, &DiagnosticError{Diagnostic: a.diag}
	}()
	o.compile()
	return o, o.collector.Err()
}

func newOutline(m *load.Model, cfg *Config) *Outline {
	o := &Outline{
		cfg:        cfg,
		model:      m,
		code:       codemodel.NewModel(),
		log:        cfg.logger(),
		classIndex: make(map[*load.Class]int),
		enums:      make(map[*load.Enum]*EnumOutline),
		elements:   make(map[*load.Element]*ElementOutline),
		packages:   make(map[string]*PackageOutline),
		fields:     make(map[*load.Property]*FieldOutline),
	}
	o.sink = MultiSink(&o.collector, LogSink{Logger: o.log}, cfg.Sink)
	return o
}

func (o *Outline) compile() {
	start := time.Now()
	for _, e := range o.model.Enums() {
		o.enum(e)
	}
	o.used = o.usedPackages()
	for _, c := range o.model.Classes() {
		o.class(c)
	}
	o.log.Debug("compile: skeletons created",
		"classes", len(o.classes),
		"enums", len(o.enumList),
		"packages", len(o.packages),
	)
	for _, p := range o.Packages() {
		p.calcDefaultValues()
	}
	for i := 0; i < len(o.classes); i++ {
		o.resolveInheritance(o.classes[i])
	}
	for i := 0; i < len(o.classes); i++ {
		o.fillClass(o.classes[i])
	}
	for i := 0; i < len(o.enumList); i++ {
		o.fillEnum(o.enumList[i])
	}
	for _, e := range o.model.Elements() {
		o.element(e)
	}
	o.settle()
	o.log.Debug("compile: done",
		"classes", len(o.classes),
		"enums", len(o.enumList),
		"elements", len(o.elemList),
		"fields", len(o.fields),
		"diagnostics", len(o.collector.Diagnostics()),
		"took", time.Since(start),
	)
}

// settle completes every outline demanded lazily by a later phase, until
// no new outline appears.
func (o *Outline) settle() {
	for {
		classes, enums, elems := len(o.classes), len(o.enumList), len(o.elemList)
		for i := 0; i < len(o.classes); i++ {
			o.fillClass(o.classes[i])
		}
		for i := 0; i < len(o.enumList); i++ {
			o.fillEnum(o.enumList[i])
		}
		for i := 0; i < len(o.elemList); i++ {
			o.fillElement(o.elemList[i])
		}
		if classes == len(o.classes) && enums == len(o.enumList) && elems == len(o.elemList) {
			return
		}
	}
}

// report sends a diagnostic to the sink. Fatal diagnostics abort the
// compile and never return.
func (o *Outline) report(sev Severity, loc string, kind MessageKind, args ...any) {
	d := Diagnostic{Severity: sev, Location: loc, Kind: kind, Args: args}
	o.sink.Report(d)
	if sev == SeverityFatal {
		panic(abort{diag: d})
	}
}

func (o *Outline) errorf(loc string, kind MessageKind, args ...any) {
	o.report(SeverityRecoverable, loc, kind, args...)
}

func (o *Outline) fatalf(loc string, kind MessageKind, args ...any) {
	o.report(SeverityFatal, loc, kind, args...)
}

// fillClass generates the body of a class once. The superclass body is
// generated first so that field overrides can be detected.
func (o *Outline) fillClass(cc *ClassOutline) {
	switch cc.state {
	case stateFilled:
		return
	case stateFilling:
		o.fatalf(cc.Target.FullName(), ErrBodyCycle, cc.Target.FullName())
	case stateReserved, stateSkeleton, stateResolving:
		o.resolveInheritance(cc)
	}
	cc.state = stateFilling
	if sc := cc.superclass; sc != nil {
		o.fillClass(sc)
	}
	o.generateClassBody(cc)
	cc.state = stateFilled
}

func (o *Outline) generateClassBody(cc *ClassOutline) {
	node := cc.Target
	mostUsed := cc.pkg.MostUsedNamespace()

	xtw := cc.Impl.Annotate(AnnotationType)
	writeTypeName(xtw, node.TypeName, mostUsed)
	if o.cfg.FeatureEnabled(FeatureSeeAlso.Name) {
		for _, sub := range node.Subclasses() {
			cc.Impl.Annotate(AnnotationSeeAlso).Set("value", o.class(sub).ImplRef.FullName())
		}
	}
	if name := node.ElementName; name != nil {
		root := cc.Impl.Annotate(AnnotationRootElement).Set("name", name.Local)
		if name.Namespace != mostUsed {
			root.Set("namespace", name.Namespace)
		}
	}

	props := sortedProperties(node.Properties)
	for _, prop := range props {
		fo := o.generateFieldDecl(cc, prop)
		if !node.Ordered || fo == nil || fo.Field == nil {
			continue
		}
		if prop.Kind == load.KindAttribute || (prop.Kind == load.KindReference && prop.Dummy) {
			continue
		}
		xtw.Set("propOrder", fo.Field.Name)
	}
	if !node.Ordered {
		xtw.Set("propOrder", "")
	}
	if node.AttributeWildcard {
		o.generateAttributeWildcard(cc)
	}
	if node.Doc != "" {
		cc.Ref.Doc = node.Doc
	}
	if cc.Impl != cc.Ref {
		cc.Impl.Doc = fmt.Sprintf("%s is the implementation of %s.", cc.Impl.FlatName(), cc.Ref.FlatName())
	}
	o.populateClassFactory(cc)
}

// writeTypeName records the schema type name, eliding the namespace when
// it is the package default. Anonymous types get an empty name.
func writeTypeName(a *codemodel.Annotation, name *load.QName, mostUsed string) {
	if name == nil {
		a.Set("name", "")
		return
	}
	a.Set("name", name.Local)
	if name.Namespace != mostUsed {
		a.Set("namespace", name.Namespace)
	}
}
