// Package emit renders a compiled outline to Go source files with
// jennifer, and writes them to disk in parallel.
//
// Every top-level type gets its own snake-cased file; nested types share
// the file of their top-level ancestor and object factories go in
// factory.go. With the manifest feature enabled, a msgpack listing of the
// generated packages is written next to them:
//
//	g := emit.NewGenerator(out, "./gen").WithBase("example.com/po")
//	if err := g.Generate(ctx); err != nil {
//	    return err
//	}
package emit
