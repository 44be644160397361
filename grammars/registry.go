// Package grammars maps file paths to tree-sitter grammars and carries the
// per-language rules used to summarize top-level declarations. The registry
// is an explicit value constructed at startup, not process-global state.
package grammars

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// NodeKind classifies an extracted declaration.
type NodeKind int

const (
	KindOther NodeKind = iota
	KindFunction
	KindStruct
	KindClass
	KindInterface
	KindImpl
	KindModule
	KindEnum
	KindObject
	KindBlock
	KindHeading
	KindType
	KindMethod
	KindField
	KindProperty
)

var nodeKindNames = map[NodeKind]string{
	KindOther:     "other",
	KindFunction:  "function",
	KindStruct:    "struct",
	KindClass:     "class",
	KindInterface: "interface",
	KindImpl:      "impl",
	KindModule:    "module",
	KindEnum:      "enum",
	KindObject:    "object",
	KindBlock:     "block",
	KindHeading:   "heading",
	KindType:      "type",
	KindMethod:    "method",
	KindField:     "field",
	KindProperty:  "property",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "other"
}

// MemberRule describes how one declaration kind nested inside a container
// body is recognized and named.
type MemberRule struct {
	NodeType  string
	Kind      NodeKind
	NameField string   // tree-sitter field holding the name node
	NameTypes []string // fallback: first shallow descendant of one of these types
	ViaChild  string   // descend into this child type before resolving the name
}

// ContainerRule describes how one top-level declaration kind is recognized.
type ContainerRule struct {
	NodeType string
	Kind     NodeKind

	// SpecType descends into a nested spec node before resolving name and
	// kind (Go's type_declaration wrapping type_spec).
	SpecType string

	// KindField plus KindByType refine Kind from the type of the node in
	// the named field (struct_type vs interface_type).
	KindField  string
	KindByType map[string]NodeKind

	// KindByChild refines Kind when a direct child of the given type is
	// present (Kotlin's interface keyword inside class_declaration).
	KindByChild map[string]NodeKind

	NameField string
	NameTypes []string

	// QualifierField names a node whose text (or first QualifierTypes
	// descendant) disambiguates same-named declarations, e.g. the trait of
	// a Rust impl or the receiver type of a Go method.
	QualifierField string
	QualifierTypes []string

	BodyField string
	BodyTypes []string

	// LabelKinds maps the text of the leading identifier child to a kind,
	// with the name drawn from string label children (HCL-style blocks).
	LabelKinds map[string]NodeKind

	// LiftFunctions extracts function declarations nested in the body as
	// additional top-level containers (Rust inline test modules).
	LiftFunctions bool

	Members []MemberRule
}

// Rules bundles the extraction tables for one language.
type Rules struct {
	// Wrappers maps wrapper node types to the field holding the wrapped
	// declaration (Python's decorated_definition).
	Wrappers map[string]string

	// Descend lists transparent node types whose children are scanned as
	// if they were top level (HCL's body).
	Descend []string

	// Trivia lists node types that extend a declaration's range backward
	// when they immediately precede it (comments, attributes).
	Trivia []string

	Containers []ContainerRule
}

// Grammar is one registered language: how to detect it and how to parse
// and summarize it.
type Grammar struct {
	Name       string
	Extensions []string // matched as path suffixes, e.g. ".go"
	Shebangs   []string // matched as first-line prefixes
	Language   func() *sitter.Language
	Rules      Rules
}

// Registry holds the registered grammars. The zero value is empty and
// usable; Builtin returns one populated with every supported language.
type Registry struct {
	entries []Grammar
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a grammar to the registry.
func (r *Registry) Register(g Grammar) {
	r.entries = append(r.entries, g)
}

// Detect returns the grammar for a file path, matching by extension, or nil
// if no grammar matches.
func (r *Registry) Detect(path string) *Grammar {
	for i := range r.entries {
		for _, ext := range r.entries[i].Extensions {
			if strings.HasSuffix(path, ext) {
				return &r.entries[i]
			}
		}
	}
	return nil
}

// DetectShebang returns the grammar whose shebang matches the first line of
// content, or nil.
func (r *Registry) DetectShebang(firstLine string) *Grammar {
	for i := range r.entries {
		for _, shebang := range r.entries[i].Shebangs {
			if strings.HasPrefix(firstLine, shebang) {
				return &r.entries[i]
			}
		}
	}
	return nil
}

// DetectContent resolves a grammar for the file, trying the path extension
// first and then sniffing a shebang from the leading line of content.
func (r *Registry) DetectContent(path string, content []byte) *Grammar {
	if g := r.Detect(path); g != nil {
		return g
	}
	line := string(content)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if line == "" {
		return nil
	}
	return r.DetectShebang(line)
}

// All returns the registered grammars.
func (r *Registry) All() []Grammar {
	return r.entries
}

// Builtin returns a registry with every built-in language registered.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(golangGrammar())
	r.Register(rustGrammar())
	r.Register(pythonGrammar())
	r.Register(javaGrammar())
	r.Register(kotlinGrammar())
	r.Register(javascriptGrammar())
	r.Register(typescriptGrammar())
	r.Register(hclGrammar())
	r.Register(markdownGrammar())
	r.Register(yamlGrammar())
	return r
}
