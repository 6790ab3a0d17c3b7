// Package gen implements the metadata generator's contract: given an
// entity's schema.Type declaration, it derives the field descriptor set
// the compiler consumes — naming, dotted path composition, the
// relation-depth guard, and the categorization precedence — without any
// build-toolchain discovery mechanics, which are out of scope.
package gen

import (
	"reflect"
	"strings"

	"github.com/soyesenna/helix-query-sub000/genconfig"
	"github.com/soyesenna/helix-query-sub000/gen/schema"
)

// Category is one of the ten attribute categories // assigned by a fixed precedence order.
type Category string

const (
	CategoryCollection Category = "COLLECTION"
	CategoryEmbedded   Category = "EMBEDDED"
	CategoryRelation   Category = "RELATION"
	CategoryString     Category = "STRING"
	CategoryNumber     Category = "NUMBER"
	CategoryDateTime   Category = "DATETIME"
	CategoryBoolean    Category = "BOOLEAN"
	CategoryEnum       Category = "ENUM"
	CategoryComparable Category = "COMPARABLE"
	CategorySimple     Category = "SIMPLE"
)

// Descriptor is one emitted field descriptor: enough for the jennifer
// emitter to produce a `var NAME = field.NewXxx[Entity, V](name,
// relationPath)` declaration, and enough for a hand-written Schema
// (package criteria) to answer Column/Relation lookups.
type Descriptor struct {
	// GoName is the UPPER_SNAKE constant name the entity's <Entity>Fields
	// container exposes this descriptor under.
	GoName string
	// Name is the dotted attribute path from the entity root.
	Name string
	// RelationPath is the dotted prefix requiring an auto-join, or "" if
	// Name does not cross a relation boundary.
	RelationPath string
	// Category is the descriptor variant to emit.
	Category Category
	// GoType is the leaf value's Go runtime type (nil for COLLECTION/
	// RELATION descriptors, whose element/target type is carried
	// separately).
	GoType reflect.Type
	// ElementType is the collection element type (COLLECTION only).
	ElementType reflect.Type
	// TargetType is the related entity's Type name (RELATION only).
	TargetType string
	// Comment carries the declaring field's doc comment, if any.
	Comment string
}

// Group is a nested relation accessor: the container named
// after a relation attribute, exposing `$` (here: the RelationField itself
// promoted by Go embedding — see the emitter) and one flattened descriptor
// per scalar/datetime/boolean/enum/comparable/embedded attribute of the
// target entity, recursing into further relations up to RelationDepth.
type Group struct {
	GoName       string
	RelationName string
	TargetType   string
	ForeignKey   string
	TargetColumn string
	Fields       []Descriptor
	Nested       []Group
}

// Result is everything Describe derives for one entity.
type Result struct {
	EntityName string
	Fields     []Descriptor
	Groups     []Group
}

// Describe walks t's fields and edges and produces the descriptor set
// requires., consulting registry to recurse into relation
// target entities and cfg to gate relation generation, transient
// inclusion, and recursion depth.
func Describe(t *schema.Type, registry schema.Registry, cfg genconfig.Config) Result {
	res := Result{EntityName: t.Name}

	for _, f := range t.Fields {
		if skip(f, cfg) {
			continue
		}
		if f.Kind() == schema.KindEmbedded {
			res.Fields = append(res.Fields, flattenEmbedded(f, "", "")...)
			continue
		}
		res.Fields = append(res.Fields, Descriptor{
			GoName:   upperSnake(f.Name()),
			Name:     f.Name(),
			Category: categorize(f),
			GoType:   f.GoType(),
			Comment:  f.CommentText(),
		})
	}

	if !cfg.GenerateRelations {
		return res
	}
	visited := map[string]bool{t.Name: true}
	for _, e := range t.Edges {
		g, ok := describeRelation(e, registry, cfg, visited, cfg.RelationDepth)
		if ok {
			res.Groups = append(res.Groups, g)
		}
	}
	return res
}

func skip(f *schema.Field, cfg genconfig.Config) bool {
	if f.IsIgnored() {
		return true
	}
	if f.IsTransient() && !cfg.IncludeTransient {
		return true
	}
	return false
}

// categorize assigns exactly one Category to a scalar schema.Field by its
// declared Kind: STRING, NUMBER, DATETIME, BOOLEAN, or ENUM, and SIMPLE for
// every other kind (UUID, JSON, bytes, other); no Kind maps to COMPARABLE.
// Embedded fields are flattened by the callers before categorize is
// reached. Edges never reach it either: describeRelation turns every edge
// whose target type is registered into a nested accessor Group, to-one and
// to-many alike, so no COLLECTION or RELATION descriptor is produced.
func categorize(f *schema.Field) Category {
	switch f.Kind() {
	case schema.KindString:
		return CategoryString
	case schema.KindInt, schema.KindInt64, schema.KindFloat64:
		return CategoryNumber
	case schema.KindTime:
		return CategoryDateTime
	case schema.KindBool:
		return CategoryBoolean
	case schema.KindEnum:
		return CategoryEnum
	case schema.KindUUID, schema.KindJSON, schema.KindBytes, schema.KindOther:
		return CategorySimple
	default:
		return CategorySimple
	}
}

// flattenEmbedded flattens an Embedded field's own fields into descriptors
// with dotted Name and UPPER_SNAKE GoName prefixed by the outer attribute
// name, recursing through nested embeddables.
func flattenEmbedded(f *schema.Field, namePrefix, goPrefix string) []Descriptor {
	name := joinDotted(namePrefix, f.Name())
	goName := joinSnake(goPrefix, upperSnake(f.Name()))
	var out []Descriptor
	for i := range f.EmbeddedFields() {
		ef := &f.EmbeddedFields()[i]
		if ef.Kind() == schema.KindEmbedded {
			out = append(out, flattenEmbedded(ef, name, goName)...)
			continue
		}
		out = append(out, Descriptor{
			GoName:   goName + "_" + upperSnake(ef.Name()),
			Name:     name + "." + ef.Name(),
			Category: categorize(ef),
			GoType:   ef.GoType(),
			Comment:  ef.CommentText(),
		})
	}
	return out
}

// describeRelation emits one nested accessor Group for edge e, recursing
// into its target entity's own relations up to depth, pruning cycles via
// visited.
func describeRelation(e *schema.Edge, registry schema.Registry, cfg genconfig.Config, visited map[string]bool, depth int) (Group, bool) {
	target, ok := registry[e.TargetType()]
	if !ok {
		return Group{}, false
	}
	g := Group{
		GoName:       upperSnake(e.Name()),
		RelationName: e.Name(),
		TargetType:   e.TargetType(),
		ForeignKey:   e.ForeignKey(),
		TargetColumn: e.TargetColumnName(),
	}
	for _, f := range target.Fields {
		if skip(f, cfg) {
			continue
		}
		if f.Kind() == schema.KindEmbedded {
			for _, fd := range flattenEmbedded(f, e.Name(), upperSnake(e.Name())) {
				fd.RelationPath = e.Name()
				g.Fields = append(g.Fields, fd)
			}
			continue
		}
		g.Fields = append(g.Fields, Descriptor{
			GoName:       upperSnake(e.Name()) + "_" + upperSnake(f.Name()),
			Name:         e.Name() + "." + f.Name(),
			RelationPath: e.Name(),
			Category:     categorize(f),
			GoType:       f.GoType(),
			Comment:      f.CommentText(),
		})
	}

	if depth > 0 && !visited[target.Name] {
		nestedVisited := map[string]bool{}
		for k := range visited {
			nestedVisited[k] = true
		}
		nestedVisited[target.Name] = true
		for _, ne := range target.Edges {
			if ne.TargetType() == "" {
				continue
			}
			if ng, ok := describeRelation(ne, registry, cfg, nestedVisited, depth-1); ok {
				g.Nested = append(g.Nested, ng)
			}
		}
	}
	return g, true
}

func joinDotted(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func joinSnake(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// upperSnake converts a camelCase/PascalCase/snake_case attribute name
// into its UPPER_SNAKE constant form.
func upperSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if r == '_' || r == '.' {
			b.WriteRune('_')
			continue
		}
		if r >= 'A' && r <= 'Z' {
			if i > 0 && runes[i-1] != '_' && runes[i-1] != '.' {
				b.WriteRune('_')
			}
			b.WriteRune(r)
			continue
		}
		b.WriteRune(unicodeToUpper(r))
	}
	return b.String()
}

func unicodeToUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
