// Package semantic summarizes a source file into a two-level tree of
// declarations (containers and their members) using tree-sitter, and pairs
// those declarations between an old and a new version of the file.
package semantic

import (
	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/grammars"
)

// Member is a declaration nested one level inside a container: a method,
// field, or property. Anything nested deeper is absorbed into the member's
// line range.
type Member struct {
	Kind grammars.NodeKind
	Name string
	Span diff.Span // line range in the version the summary was built from
}

// Container is a top-level declaration: a function, type, class, impl
// block, or similar.
type Container struct {
	Kind grammars.NodeKind
	Name string
	// Qualifier disambiguates same-named declarations of the same kind:
	// the trait of a Rust impl, the receiver type of a Go method, the
	// block type of an HCL block. Empty when the name alone identifies.
	Qualifier string
	Span      diff.Span
	Members   []Member
}

// sameIdentity reports whether two containers refer to the same declaration
// for matching purposes. Position is deliberately not part of identity.
func (c Container) sameIdentity(o Container) bool {
	return c.Kind == o.Kind && c.Name == o.Name && c.Qualifier == o.Qualifier
}

func (m Member) sameIdentity(o Member) bool {
	return m.Kind == o.Kind && m.Name == o.Name
}

// Summary is the declaration outline of one version of one file.
type Summary struct {
	Containers []Container
}
