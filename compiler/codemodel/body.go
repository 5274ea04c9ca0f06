package codemodel

// Body is the implementation of a method. The set of bodies is closed;
// renderers switch over the concrete types.
type Body interface {
	body()
}

// ReturnField returns the value of Field.
type ReturnField struct{ Field *Field }

// SetField assigns the parameter Param to Field.
type SetField struct {
	Field *Field
	Param string
}

// LiveField returns Field, initializing an empty map or slice first, so
// callers mutate the owner's collection through the result.
type LiveField struct{ Field *Field }

// IsSetField reports whether Field holds a value.
type IsSetField struct{ Field *Field }

// UnsetField clears Field.
type UnsetField struct{ Field *Field }

// EnumValue returns the backing value of the receiver constant, or its
// name when the enum has no backing values.
type EnumValue struct{ Enum *Defined }

// EnumLookup recovers a constant of Enum from a value. Linear lookups scan
// the constants in declaration order and compare backing values; otherwise
// the value is matched against constant names.
type EnumLookup struct {
	Enum   *Defined
	Linear bool
	Param  string
}

// NewInstance returns a new zero instance of Type.
type NewInstance struct{ Type *Defined }

// WrapValue returns a new instance of Type with Field set to Param.
type WrapValue struct {
	Type  *Defined
	Field *Field
	Param string
}

func (ReturnField) body() {}
func (SetField) body() {}
func (LiveField) body() {}
func (IsSetField) body() {}
func (UnsetField) body() {}
func (EnumValue) body() {}
func (EnumLookup) body() {}
func (NewInstance) body() {}
func (WrapValue) body() {}
