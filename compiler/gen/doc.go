// Package gen compiles a schema-derived model graph into a code model of
// bean types.
//
// # Pipeline
//
// Compile walks the model graph in fixed phases:
//
//	load.Model
//	    ↓
//	enum skeletons, used packages, class skeletons
//	    ↓
//	package defaults (dominant namespace)
//	    ↓
//	inheritance (supertypes, root types, serialization)
//	    ↓
//	class bodies (field strategies), enum bodies, elements
//	    ↓
//	Outline (codemodel.Model + per-node outlines)
//
// Classes are materialized on first demand and cached by identity, so a
// class reached through a property before its own turn is created once and
// takes part in every later phase.
//
// # Key Types
//
//   - Outline: the result of a compile, with lookups from model nodes
//   - ClassOutline: exposed type and implementation of a class
//   - EnumOutline: enum type with Value and FromValue
//   - PackageOutline: the outlines of one generated package
//   - FieldOutline: the storage and accessors of one property
//   - Config: compile configuration built from Options
//
// # Diagnostics
//
// Problems in the model are reported as Diagnostics to the configured
// Sink. Recoverable diagnostics let the compile finish; Compile then
// returns the outline together with a *CompileError:
//
//	out, err := gen.Compile(model, cfg)
//	switch {
//	case out == nil:
//	    return err // fatal, matches ErrFatal
//	case err != nil:
//	    log.Warn("compiled with errors", "count", len(gen.Diagnostics(err)))
//	}
//
// # Field Strategies
//
// Each property is rendered by a FieldRenderer chosen from the configured
// RendererFactory. The standard strategies live in package field:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithRenderers(field.MustRegistry(field.IsSet)),
//	    gen.WithStructure(gen.InterfaceAndImpl),
//	)
package gen
