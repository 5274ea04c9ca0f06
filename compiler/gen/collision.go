package gen

import (
	"strings"

	"github.com/syssam/beangen/compiler/load"
)

// checkReservedName reports a class whose short name equals the trailing
// segment of its container: the outer class, the element wrapper, or the
// last element of the package path.
func (o *Outline) checkReservedName(cc *ClassOutline) {
	node := cc.Target
	if node.Name == containerName(node.Parent, cc.pkg.Path()) {
		o.errorf(node.FullName(), ErrKeynameCollision, node.Name)
	}
}

func containerName(parent load.Parent, path string) string {
	switch parent.Kind {
	case load.ParentClass:
		if parent.Class != nil {
			return parent.Class.Name
		}
	case load.ParentElement:
		if e := parent.Element; e != nil {
			if e.ClassName != "" {
				return e.ClassName
			}
			return e.Name.Local
		}
	}
	return trailingSegment(path)
}

// trailingSegment returns the last element of a slash or dot separated
// path.
func trailingSegment(path string) string {
	if i := strings.LastIndexAny(path, "/."); i >= 0 {
		return path[i+1:]
	}
	return path
}

// enumMemberCheck validates enum constant names within one enum.
type enumMemberCheck struct {
	o    *Outline
	loc  string
	seen map[string]struct{}
}

func (o *Outline) newEnumMemberCheck(eo *EnumOutline) *enumMemberCheck {
	return &enumMemberCheck{
		o:    o,
		loc:  eo.Target.FullName(),
		seen: make(map[string]struct{}),
	}
}

// usable reports whether the member can be emitted. Illegal identifiers
// are reported and rejected; duplicate names, compared in their exported
// form, are reported but accepted.
func (c *enumMemberCheck) usable(m *load.EnumMember) bool {
	if !IsIdentifier(m.Name) {
		c.o.errorf(c.loc, ErrUnusableName, m.Lexical, m.Name)
		return false
	}
	key := Exported(m.Name)
	if _, dup := c.seen[key]; dup {
		c.o.errorf(c.loc, ErrNameCollision, m.Name)
		return true
	}
	c.seen[key] = struct{}{}
	return true
}
