package criteria

import (
	"fmt"
	"strings"

	"github.com/soyesenna/helix-query-sub000/session"
)

// Context owns the per-execution join/fetch memoization tables the
// compiler consults while lowering an expr.Node tree. A Context is built
// fresh for every query execution; it is not shared across executions,
// matching the one-Selector-per-query lifecycle of the underlying driver.
type Context struct {
	sel        *session.Selector
	dialect    string
	rootAlias  string
	rootSchema Schema

	joins      map[string]string
	joinSchema map[string]Schema
	fetches    map[string]string

	aliasSeq int
}

// NewContext returns a Context rooted at rootSchema's table, writing join
// clauses into sel.
func NewContext(sel *session.Selector, dialect string, rootAlias string, rootSchema Schema) *Context {
	return &Context{
		sel:        sel,
		dialect:    dialect,
		rootAlias:  rootAlias,
		rootSchema: rootSchema,
		joins:      make(map[string]string),
		joinSchema: make(map[string]Schema),
		fetches:    make(map[string]string),
	}
}

// Selector exposes the underlying statement builder for the execution
// engine's terminal operations (select list, distinct, limit/offset).
func (c *Context) Selector() *session.Selector { return c.sel }

// GetOrCreateJoin materializes a plain (non-fetch) LEFT JOIN chain for the
// dotted relationPath, reusing any existing join or fetch-upgraded-to-join
// entry for each prefix, and returns the final segment's alias and schema.
func (c *Context) GetOrCreateJoin(relationPath string) (alias string, schema Schema) {
	return c.materialize(relationPath, c.joins, true)
}

// GetOrCreateFetch materializes a fetch-join chain, reusing a plain join's
// alias (but still recording it in the fetch table) when one already
// exists for a prefix.
func (c *Context) GetOrCreateFetch(relationPath string) (alias string, schema Schema) {
	return c.materialize(relationPath, c.fetches, false)
}

// IsFetch reports whether relationPath has been registered as a fetch
// join, for the execution engine's collection-fetch-join pagination check
//.
func (c *Context) IsFetch(relationPath string) bool {
	_, ok := c.fetches[relationPath]
	return ok
}

func (c *Context) materialize(relationPath string, table map[string]string, isJoinTable bool) (string, Schema) {
	if alias, ok := table[relationPath]; ok {
		return alias, c.joinSchema[relationPath]
	}
	// The companion table (fetch, when materializing a join; join, when
	// materializing a fetch) already has this exact prefix: reuse its
	// alias and SQL JOIN clause, just add the bookkeeping entry.
	companion := c.fetches
	if !isJoinTable {
		companion = c.joins
	}
	if alias, ok := companion[relationPath]; ok {
		table[relationPath] = alias
		return alias, c.joinSchema[relationPath]
	}

	segments := strings.Split(relationPath, ".")
	parentAlias := c.rootAlias
	parentSchema := c.rootSchema
	built := ""
	for _, seg := range segments {
		if built == "" {
			built = seg
		} else {
			built = built + "." + seg
		}

		if alias, ok := table[built]; ok {
			parentAlias, parentSchema = alias, c.joinSchema[built]
			continue
		}
		if alias, ok := companion[built]; ok {
			table[built] = alias
			parentAlias, parentSchema = alias, c.joinSchema[built]
			continue
		}

		meta, targetSchema, ok := parentSchema.Relation(seg)
		if !ok {
			// Metadata gap: the schema has no relation by this name.
			// Fall back to the segment name as the target table, joined
			// on <segment>_id = id, with the parent's schema standing in
			// for the target's, so the query still renders instead of
			// panicking mid-compile.
			meta = RelationMeta{Table: seg, ForeignKey: seg + "_id", TargetColumn: "id"}
			targetSchema = parentSchema
		}
		c.aliasSeq++
		alias := fmt.Sprintf("t%d", c.aliasSeq)
		on := fmt.Sprintf(
			"%s.%s = %s.%s",
			session.QuoteIdent(c.dialect, parentAlias), session.QuoteIdent(c.dialect, meta.ForeignKey),
			session.QuoteIdent(c.dialect, alias), session.QuoteIdent(c.dialect, meta.TargetColumn),
		)
		c.sel.Join(session.LeftJoin, meta.Table, alias, on)
		table[built] = alias
		c.joinSchema[built] = targetSchema
		parentAlias, parentSchema = alias, targetSchema
	}
	return parentAlias, parentSchema
}

// ResolvePath implements resolve_path: root resolves to the
// root alias; a non-empty relation_path auto-joins (or fetch-upgrades)
// before the remaining segments are resolved as a plain attribute step.
func (c *Context) ResolvePath(relationPath, attributeName string) string {
	if attributeName == "" {
		return session.QuoteIdent(c.dialect, c.rootAlias)
	}
	if relationPath == "" {
		col, _ := c.rootSchema.Column(attributeName)
		return session.QuoteIdent(c.dialect, c.rootAlias) + "." + session.QuoteIdent(c.dialect, col)
	}
	alias, schema := c.GetOrCreateJoin(relationPath)
	leaf := strings.TrimPrefix(attributeName, relationPath+".")
	col, _ := schema.Column(leaf)
	return session.QuoteIdent(c.dialect, alias) + "." + session.QuoteIdent(c.dialect, col)
}
