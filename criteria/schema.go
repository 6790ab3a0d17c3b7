// Package criteria lowers the expr intermediate representation into SQL
// fragments the session package's Selector assembles into a statement
//: the join/fetch-join materialization, path auto-join
// resolution, and operator-to-SQL dispatch.
package criteria

// RelationMeta describes one relation attribute as the generator (component
// G) would emit it: enough for the compiler to join from the owning
// table to the target table without reflecting over application structs.
type RelationMeta struct {
	// Table is the target entity's unquoted table name.
	Table string
	// ForeignKey is the FK column on the *owning* side's table.
	ForeignKey string
	// TargetColumn is the column on the target table the FK references
	// (normally its primary key).
	TargetColumn string
	// Collection reports whether this relation is to-many. The execution
	// engine consults it to decide whether a fetch join requires two-phase
	// pagination and to count collection fetch joins for the
	// "two or more" warning.
	Collection bool
}

// Schema is the per-entity metadata the criteria compiler consumes to
// resolve attribute names to columns and relation names to joins. Package
// gen does not emit Schema implementations; each entity's is written by
// hand, and gen.Describe's descriptors and relation groups carry the names
// and join columns it needs.
type Schema interface {
	// Table is this entity's unquoted table name.
	Table() string
	// Column maps a scalar attribute name to its unquoted column name.
	Column(attr string) (column string, ok bool)
	// Relation maps a relation attribute name to its join metadata.
	Relation(attr string) (meta RelationMeta, schema Schema, ok bool)
}
