// Package schema is the metadata generator's input surface: a trimmed,
// fluent field/edge builder DSL an application uses to declare one Type
// per entity (field.String("x").Optional(), edge.To("posts", Post.Type)),
// without a full validator/annotation/SQL-DDL surface — the generator
// only needs enough of each field to categorize it and compose its
// dotted path, not to emit migrations.
package schema

import (
	"reflect"
	"time"
)

// Kind is the declared kind of a field, independent of the descriptor
// category the generator later derives from it.
type Kind string

const (
	KindString   Kind = "string"
	KindInt      Kind = "int"
	KindInt64    Kind = "int64"
	KindFloat64  Kind = "float64"
	KindBool     Kind = "bool"
	KindTime     Kind = "time"
	KindUUID     Kind = "uuid"
	KindEnum     Kind = "enum"
	KindJSON     Kind = "json"
	KindBytes    Kind = "bytes"
	KindOther    Kind = "other"
	KindEmbedded Kind = "embedded"
)

// Field is one declared attribute of a Type, built fluently.
type Field struct {
	name        string
	kind        Kind
	goType      reflect.Type
	optional    bool
	nillable    bool
	unique      bool
	immutable   bool
	transient   bool
	ignored     bool
	comment     string
	defaultVal  any
	enumValues  []string
	embedFields []Field // for KindEmbedded
}

// String declares a string-valued field.
func String(name string) *Field { return &Field{name: name, kind: KindString, goType: reflect.TypeOf("")} }

// Int declares an int-valued field.
func Int(name string) *Field { return &Field{name: name, kind: KindInt, goType: reflect.TypeOf(0)} }

// Int64 declares an int64-valued field.
func Int64(name string) *Field {
	return &Field{name: name, kind: KindInt64, goType: reflect.TypeOf(int64(0))}
}

// Float64 declares a float64-valued field.
func Float64(name string) *Field {
	return &Field{name: name, kind: KindFloat64, goType: reflect.TypeOf(float64(0))}
}

// Bool declares a boolean field.
func Bool(name string) *Field { return &Field{name: name, kind: KindBool, goType: reflect.TypeOf(false)} }

// Time declares a temporal field.
func Time(name string) *Field {
	return &Field{name: name, kind: KindTime, goType: reflect.TypeOf(time.Time{})}
}

// UUID declares a UUID-valued field; zero is a zero value of the concrete
// UUID Go type the application uses (so the generator need not import a
// specific UUID package itself).
func UUID(name string, zero any) *Field {
	return &Field{name: name, kind: KindUUID, goType: reflect.TypeOf(zero)}
}

// Enum declares an enum-valued field over its legal string values.
func Enum(name string) *Field { return &Field{name: name, kind: KindEnum, goType: reflect.TypeOf("")} }

// Values sets the legal values of an Enum field.
func (f *Field) Values(vs ...string) *Field { f.enumValues = vs; return f }

// JSON declares a JSON-valued field typed as zero's Go type.
func JSON(name string, zero any) *Field {
	return &Field{name: name, kind: KindJSON, goType: reflect.TypeOf(zero)}
}

// Bytes declares a []byte field.
func Bytes(name string) *Field {
	return &Field{name: name, kind: KindBytes, goType: reflect.TypeOf([]byte(nil))}
}

// Other declares a field of a custom Go type, typed as zero's type.
func Other(name string, zero any) *Field {
	return &Field{name: name, kind: KindOther, goType: reflect.TypeOf(zero)}
}

// Embedded declares a field flattened from an embeddable value's own
// fields.
func Embedded(name string, fields ...*Field) *Field {
	embed := make([]Field, len(fields))
	for i, ef := range fields {
		embed[i] = *ef
	}
	return &Field{name: name, kind: KindEmbedded, embedFields: embed}
}

// Optional marks the field not required on create.
func (f *Field) Optional() *Field { f.optional = true; return f }

// Nillable marks the field nullable in the database / pointer in Go.
func (f *Field) Nillable() *Field { f.nillable = true; return f }

// Unique adds a uniqueness constraint.
func (f *Field) Unique() *Field { f.unique = true; return f }

// Immutable marks the field as non-updatable.
func (f *Field) Immutable() *Field { f.immutable = true; return f }

// Transient excludes the field from generation unless the generator
// config's IncludeTransient option overrides it.
func (f *Field) Transient() *Field { f.transient = true; return f }

// IgnoreField is the explicit per-field opt-out marker
func (f *Field) IgnoreField() *Field { f.ignored = true; return f }

// Default sets a literal or function default value.
func (f *Field) Default(v any) *Field { f.defaultVal = v; return f }

// Comment attaches a doc comment the emitter carries onto the generated
// descriptor.
func (f *Field) Comment(c string) *Field { f.comment = c; return f }

// Name returns the field's declared name.
func (f *Field) Name() string { return f.name }

// Kind returns the field's declared kind.
func (f *Field) Kind() Kind { return f.kind }

// GoType returns the field's Go runtime type (nil for KindEmbedded).
func (f *Field) GoType() reflect.Type { return f.goType }

// IsOptional reports whether Optional was set.
func (f *Field) IsOptional() bool { return f.optional }

// IsNillable reports whether Nillable was set.
func (f *Field) IsNillable() bool { return f.nillable }

// IsUnique reports whether Unique was set.
func (f *Field) IsUnique() bool { return f.unique }

// IsImmutable reports whether Immutable was set.
func (f *Field) IsImmutable() bool { return f.immutable }

// IsTransient reports whether Transient was set.
func (f *Field) IsTransient() bool { return f.transient }

// IsIgnored reports whether IgnoreField was set.
func (f *Field) IsIgnored() bool { return f.ignored }

// CommentText returns the attached doc comment, if any.
func (f *Field) CommentText() string { return f.comment }

// DefaultValue returns the attached default, if any.
func (f *Field) DefaultValue() any { return f.defaultVal }

// EnumValues returns the legal values of an Enum field.
func (f *Field) EnumValues() []string { return f.enumValues }

// EmbeddedFields returns the flattened fields of an Embedded field.
func (f *Field) EmbeddedFields() []Field { return f.embedFields }
