package gen

import (
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fieldPkg is the import path of package field, qualified in every emitted
// `field.NewXxx[...]` call.
const fieldPkg = "github.com/soyesenna/helix-query-sub000/field"

var titleCaser = cases.Title(language.Und)

// Emit renders the `<Entity>Fields` container file for res into pkg: a
// `var EntityFields = struct{ ... }{ ... }` value whose members are
// process-lifetime immutable descriptors, plus one nested struct per
// relation accessor group.
func Emit(pkg, entityPkgPath, entityType string, res Result) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(fmt.Sprintf("Code generated by helix-query gen. DO NOT EDIT."))

	containerName := entityType + "Fields"
	entityQual := jen.Qual(entityPkgPath, entityType)
	if entityPkgPath == "" {
		entityQual = jen.Id(entityType)
	}

	f.Commentf("%s holds the process-lifetime field descriptors for %s (spec %s).", containerName, entityType, "component A")
	f.Var().Id(containerName).Op("=").Add(structType(entityQual, res)).Values(structValues(entityQual, entityType, res))

	return f
}

func structType(entityQual *jen.Statement, res Result) *jen.Statement {
	return jen.StructFunc(func(g *jen.Group) {
		for _, d := range res.Fields {
			g.Comment(fieldDocComment(d))
			g.Id(d.GoName).Add(descriptorType(entityQual, d))
		}
		for _, grp := range res.Groups {
			g.Commentf("%s is the nested relation accessor for %q.", grp.GoName, grp.RelationName)
			g.Id(grp.GoName).Add(groupType(entityQual, grp))
		}
	})
}

// fieldDocComment renders a descriptor's doc comment: the schema author's
// own Comment() text when set, otherwise a title-cased rendering of the
// attribute name ('s generator emits something for every
// descriptor; this rewrite prefers the author's words when given any).
func fieldDocComment(d Descriptor) string {
	if d.Comment != "" {
		return d.Comment
	}
	words := strings.Split(strings.ToLower(strings.ReplaceAll(d.Name, ".", " ")), " ")
	return titleCaser.String(strings.Join(words, " ")) + " field descriptor."
}

func descriptorType(entityQual *jen.Statement, d Descriptor) *jen.Statement {
	switch d.Category {
	case CategoryString:
		return jen.Qual(fieldPkg, "StringField").Types(entityQual.Clone())
	case CategoryNumber:
		return jen.Qual(fieldPkg, "NumberField").Types(entityQual.Clone(), goTypeCode(d.GoType))
	case CategoryDateTime:
		return jen.Qual(fieldPkg, "DateTimeField").Types(entityQual.Clone())
	case CategoryComparable:
		return jen.Qual(fieldPkg, "ComparableField").Types(entityQual.Clone(), goTypeCode(d.GoType))
	default:
		return jen.Qual(fieldPkg, "Simple").Types(entityQual.Clone(), goTypeCode(d.GoType))
	}
}

func descriptorValue(entityName string, d Descriptor) *jen.Statement {
	switch d.Category {
	case CategoryString:
		return jen.Qual(fieldPkg, "NewString").Types(jen.Id(entityName)).Call(jen.Lit(d.Name), jen.Lit(d.RelationPath))
	case CategoryNumber:
		return jen.Qual(fieldPkg, "NewNumber").Types(jen.Id(entityName), goTypeCode(d.GoType)).Call(jen.Lit(d.Name), jen.Lit(d.RelationPath))
	case CategoryDateTime:
		return jen.Qual(fieldPkg, "NewDateTime").Types(jen.Id(entityName)).Call(jen.Lit(d.Name), jen.Lit(d.RelationPath))
	case CategoryComparable:
		return jen.Qual(fieldPkg, "NewComparable").Types(jen.Id(entityName), goTypeCode(d.GoType)).Call(jen.Lit(d.Name), jen.Lit(d.RelationPath))
	default:
		return jen.Qual(fieldPkg, "NewSimple").Types(jen.Id(entityName), goTypeCode(d.GoType)).Call(jen.Lit(d.Name), jen.Lit(d.RelationPath))
	}
}

// groupType renders a nested relation accessor's struct type: the
// RelationField embedded anonymously (so the container itself is usable
// as the `$` join accessor via Go method promotion), plus
// one field per flattened descriptor, plus one nested struct per deeper
// relation group.
func groupType(entityQual *jen.Statement, grp Group) *jen.Statement {
	return jen.StructFunc(func(g *jen.Group) {
		g.Qual(fieldPkg, "RelationField").Types(entityQual.Clone(), jen.Id(grp.TargetType), jen.Any())
		for _, d := range grp.Fields {
			g.Id(strings.TrimPrefix(d.GoName, grp.GoName+"_")).Add(descriptorType(entityQual, d))
		}
		for _, nested := range grp.Nested {
			g.Id(nested.GoName).Add(groupType(entityQual, nested))
		}
	})
}

func groupValue(entityName string, grp Group) *jen.Statement {
	return jen.Values(jen.DictFunc(func(d jen.Dict) {
		d[jen.Qual(fieldPkg, "RelationField").Types(jen.Id(entityName), jen.Id(grp.TargetType), jen.Any())] = jen.Qual(fieldPkg, "NewRelation").
			Types(jen.Id(entityName), jen.Id(grp.TargetType), jen.Any()).
			Call(jen.Lit(grp.RelationName), jen.Lit(""), jen.Lit(grp.TargetColumn))
		for _, fd := range grp.Fields {
			d[jen.Id(strings.TrimPrefix(fd.GoName, grp.GoName+"_"))] = descriptorValue(entityName, fd)
		}
		for _, nested := range grp.Nested {
			d[jen.Id(nested.GoName)] = groupValue(entityName, nested)
		}
	}))
}

func structValues(entityQual *jen.Statement, entityName string, res Result) jen.Dict {
	return jen.DictFunc(func(d jen.Dict) {
		for _, fd := range res.Fields {
			d[jen.Id(fd.GoName)] = descriptorValue(entityName, fd)
		}
		for _, grp := range res.Groups {
			d[jen.Id(grp.GoName)] = groupValue(entityName, grp)
		}
	})
}

// goTypeCode renders a reflect.Type as the jen code for that Go type,
// covering the builtin kinds the generator's Field DSL exposes; a type it
// does not recognize falls back to jen.Any(), which still compiles (as
// `any`) but loses the compile-time operator constraint. The fallback is
// silent: nothing is logged or reported.
func goTypeCode(t interface{ String() string }) *jen.Statement {
	if t == nil {
		return jen.Any()
	}
	switch t.String() {
	case "string":
		return jen.String()
	case "int":
		return jen.Int()
	case "int64":
		return jen.Int64()
	case "float64":
		return jen.Float64()
	case "bool":
		return jen.Bool()
	case "time.Time":
		return jen.Qual("time", "Time")
	case "[]byte":
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}
