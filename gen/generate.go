package gen

import "io"

// Generate renders the `<Entity>Fields` source file for res to w. The
// generator is run once per build; its output is a
// source-level artifact consumed by the compiler in the same build. How
// it is invoked from a build pipeline (go:generate, a Makefile target, a
// discovery pass over schema packages) is the "mechanical host-language
// integration" out of scope — callers wire this however their
// toolchain prefers.
func Generate(w io.Writer, pkg, entityPkgPath, entityType string, res Result) error {
	return Emit(pkg, entityPkgPath, entityType, res).Render(w)
}
