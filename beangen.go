// Package beangen is the runtime support of code generated by the bean
// compiler: error types returned by generated enums and interfaces
// implemented by generated classes.
//
// The compiler itself lives in compiler/gen, the model loader in
// compiler/load and the command line tool in cmd/beangen.
package beangen

// Version of the bean compiler, written into generated file headers.
const Version = "v0.4.0"

// Serializable is implemented by generated classes that carry a
// serialization version tag.
type Serializable interface {
	SerialVersionUID() int64
}

// Enum is implemented by generated enum types.
type Enum interface {
	// String returns the lexical form of the constant.
	String() string
}
