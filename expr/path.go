package expr

import "reflect"

// Path is a root-or-attribute reference from an entity root to a leaf
// value. The root path has no parent and no attribute name. A path whose
// RelationPath is non-empty crosses a relation boundary; compiling any
// reference to it must ensure a join on RelationPath exists before the
// leaf is resolved (see the criteria package).
type Path struct {
	Type          reflect.Type
	AttributeName string // empty for the root path
	Parent        *Path
	RelationPath  string // dotted prefix requiring an auto-join, or ""
}

func (*Path) node() {}

// Root returns the root path for entity type t.
func Root(t reflect.Type) *Path {
	return &Path{Type: t}
}

// Get returns the child path for a direct attribute of the root, named by
// its dotted attribute path (e.g. "department.name") and, when the
// attribute crosses a relation boundary, the dotted relation prefix that
// must be auto-joined before the leaf is resolved (e.g. "department").
func (p *Path) Get(valueType reflect.Type, name, relationPath string) *Path {
	return &Path{
		Type:          valueType,
		AttributeName: name,
		Parent:        p,
		RelationPath:  relationPath,
	}
}

// IsRoot reports whether p is an entity root (no parent, no attribute).
func (p *Path) IsRoot() bool {
	return p.Parent == nil && p.AttributeName == ""
}

// String renders the dotted path, or "$root" for an entity root.
func (p *Path) String() string {
	if p.IsRoot() {
		return "$root"
	}
	return p.AttributeName
}
