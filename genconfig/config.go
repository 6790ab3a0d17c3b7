// Package genconfig holds the options the metadata generator (package
// gen) consults: whether to generate relation accessors, whether
// transient attributes are included, and how deep nested relation
// accessors recurse.
//
// This is a small struct literal by default; Load additionally accepts a
// YAML form for build pipelines that keep generator config out of Go
// source.
package genconfig

import (
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the generator's configuration namespace.
type Config struct {
	// GenerateRelations, when false, skips relation attributes entirely.
	GenerateRelations bool `yaml:"generateRelations"`
	// IncludeTransient, when true, emits attributes marked transient.
	IncludeTransient bool `yaml:"includeTransient"`
	// RelationDepth bounds nested relation-accessor recursion; cycles are
	// pruned regardless of depth remaining.
	RelationDepth int `yaml:"relationDepth"`
}

// Default returns the spec's documented defaults: GenerateRelations true,
// IncludeTransient false, RelationDepth 1.
func Default() Config {
	return Config{
		GenerateRelations: true,
		IncludeTransient:  false,
		RelationDepth:     1,
	}
}

// Load reads a YAML-encoded Config from r, starting from Default() so an
// omitted key keeps its documented default rather than zeroing out.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, err
	}
	return cfg, nil
}
