package gen

import "fmt"

// MessageKind identifies a diagnostic message.
type MessageKind string

// Message kinds reported by the compiler.
const (
	// ErrUnusableName: an enum constant name is not a legal identifier.
	// Args: lexical value, generated name.
	ErrUnusableName MessageKind = "ERR_UNUSABLE_NAME"
	// ErrNameCollision: two enum constants share a name. Args: name.
	ErrNameCollision MessageKind = "ERR_NAME_COLLISION"
	// ErrKeynameCollision: a class is named like its container. Args: name.
	ErrKeynameCollision MessageKind = "ERR_KEYNAME_COLLISION"
	// ErrClassNameCollision: a type name is taken in its package. Args: name.
	ErrClassNameCollision MessageKind = "ERR_CLASS_NAME_COLLISION"
	// ErrIllegalLexical: an enum lexical value does not parse as the base
	// kind. Args: lexical value, base kind.
	ErrIllegalLexical MessageKind = "ERR_ILLEGAL_LEXICAL"
	// ErrUnknownStrategy: a property names an unregistered field strategy.
	// Args: strategy key, property name.
	ErrUnknownStrategy MessageKind = "ERR_UNKNOWN_STRATEGY"
	// ErrInheritanceCycle: a class is its own ancestor. Args: class name.
	ErrInheritanceCycle MessageKind = "ERR_INHERITANCE_CYCLE"
	// ErrContainmentCycle: a class is nested in itself. Args: class name.
	ErrContainmentCycle MessageKind = "ERR_CONTAINMENT_CYCLE"
	// ErrBodyCycle: a class body was demanded while being filled.
	// Args: class name.
	ErrBodyCycle MessageKind = "ERR_BODY_CYCLE"
	// ErrOverrideConflict: a property redeclares a superclass property
	// with accessors of a different type. Args: property name, superclass.
	ErrOverrideConflict MessageKind = "ERR_OVERRIDE_CONFLICT"
)

var messageFormats = map[MessageKind]string{
	ErrUnusableName:       "cannot generate a usable identifier for enum constant %q (generated name %q); use a customization to name it",
	ErrNameCollision:      "two enum constants are named %q; use a customization to rename one of them",
	ErrKeynameCollision:   "class %q has the same name as its container; use a customization to rename it",
	ErrClassNameCollision: "a type named %q is already defined in this package",
	ErrIllegalLexical:     "enum value %q is not a valid %s",
	ErrUnknownStrategy:    "unknown field strategy %q for property %q; using the default strategy",
	ErrInheritanceCycle:   "class %q inherits from itself",
	ErrContainmentCycle:   "class %q is nested in itself",
	ErrBodyCycle:          "class %q was requested while its body was being generated",
	ErrOverrideConflict:   "property %q changes the type of a property inherited from %q; the inherited accessors are kept",
}

// Format renders the message with its arguments.
func (k MessageKind) Format(args ...any) string {
	format, ok := messageFormats[k]
	if !ok {
		return fmt.Sprint(append([]any{string(k), ": "}, args...)...)
	}
	return fmt.Sprintf(format, args...)
}
