package schema

// Type is one entity's schema declaration: its name, table, fields, and
// edges, the generator's unit of work.
type Type struct {
	Name   string
	Table  string
	ID     *Field // identifier field; nil means no single id (composite or none)
	Fields []*Field
	Edges  []*Edge
}

// New returns a Type declaration for name, storing rows in table.
func New(name, table string) *Type {
	return &Type{Name: name, Table: table}
}

// WithID sets the entity's single identifier field, the only shape the
// execution engine's two-phase pagination and RelationField.In ID-lowering
// can operate against.
func (t *Type) WithID(id *Field) *Type {
	t.ID = id
	return t
}

// WithFields appends attribute declarations.
func (t *Type) WithFields(fields ...*Field) *Type {
	t.Fields = append(t.Fields, fields...)
	return t
}

// WithEdges appends relation declarations.
func (t *Type) WithEdges(edges ...*Edge) *Type {
	t.Edges = append(t.Edges, edges...)
	return t
}

// Registry maps a Type's declared Name to its Type, the lookup table the
// generator consults to recurse into a relation's target entity
//.
type Registry map[string]*Type
