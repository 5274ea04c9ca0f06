package codemodel

// Annotation is a named piece of binding metadata attached to a type,
// field or enum constant. The Go renderer maps annotations onto struct tags
// and directive comments.
type Annotation struct {
	Name   string
	Params []AnnotationParam
}

// AnnotationParam is one name/value pair of an annotation. A name may
// repeat to form a list.
type AnnotationParam struct {
	Name  string
	Value string
}

// Set appends a parameter.
func (a *Annotation) Set(name, value string) *Annotation {
	a.Params = append(a.Params, AnnotationParam{Name: name, Value: value})
	return a
}

// Param returns the first value of the named parameter.
func (a *Annotation) Param(name string) (string, bool) {
	for _, p := range a.Params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns all values of the named parameter in order.
func (a *Annotation) Values(name string) []string {
	var vs []string
	for _, p := range a.Params {
		if p.Name == name {
			vs = append(vs, p.Value)
		}
	}
	return vs
}

// Has reports whether the named parameter is present.
func (a *Annotation) Has(name string) bool {
	_, ok := a.Param(name)
	return ok
}

// Annotatable is embedded by model elements that carry annotations.
type Annotatable struct {
	Annotations []*Annotation
}

// Annotate adds an annotation. Annotating twice with the same name
// returns the existing annotation.
func (a *Annotatable) Annotate(name string) *Annotation {
	if an, ok := a.Annotation(name); ok {
		return an
	}
	an := &Annotation{Name: name}
	a.Annotations = append(a.Annotations, an)
	return an
}

// Annotation returns the named annotation.
func (a *Annotatable) Annotation(name string) (*Annotation, bool) {
	for _, an := range a.Annotations {
		if an.Name == name {
			return an, true
		}
	}
	return nil, false
}

// Annotated reports whether the named annotation is present.
func (a *Annotatable) Annotated(name string) bool {
	_, ok := a.Annotation(name)
	return ok
}
