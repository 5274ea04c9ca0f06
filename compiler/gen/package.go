package gen

import (
	"sort"

	"github.com/syssam/beangen/compiler/load"
)

// packageFor returns the package outline of an import path, creating it on
// first use.
func (o *Outline) packageFor(path string) *PackageOutline {
	if p, ok := o.packages[path]; ok {
		return p
	}
	p := &PackageOutline{outline: o, pkg: o.code.Package(path)}
	o.packages[path] = p
	return p
}

// usedPackages collects the packages of package-level classes and global
// elements in lexical order.
func (o *Outline) usedPackages() []*PackageOutline {
	set := make(map[string]struct{})
	for _, c := range o.model.Classes() {
		if c.Parent.Kind == load.ParentPackage {
			set[c.Package] = struct{}{}
		}
	}
	for _, e := range o.model.GlobalElements() {
		set[e.Package] = struct{}{}
	}
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	pkgs := make([]*PackageOutline, len(paths))
	for i, path := range paths {
		pkgs[i] = o.packageFor(path)
	}
	return pkgs
}

// calcDefaultValues computes the package aggregates. The dominant namespace
// is the most frequent namespace among the type names and element names of
// the package's classes, counted in qualified-name order; the first
// namespace to reach the maximum wins.
func (p *PackageOutline) calcDefaultValues() {
	p.calculated = true
	counts := make(map[string]int)
	var order []string
	count := func(ns string) {
		if _, ok := counts[ns]; !ok {
			order = append(order, ns)
		}
		counts[ns]++
	}
	for _, cc := range p.Classes() {
		if name := cc.Target.TypeName; name != nil {
			count(name.Namespace)
		}
		if name := cc.Target.ElementName; name != nil {
			count(name.Namespace)
		}
	}
	best, top := "", 0
	for _, ns := range order {
		if counts[ns] > top {
			best, top = ns, counts[ns]
		}
	}
	p.mostUsed = best
}
