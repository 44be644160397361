// Package record implements the selectable change tree: one arena of nodes
// spanning File→Container→Member→Section→Line, with tristate selection,
// cursor navigation, and reconstruction of the accepted content.
package record

import "github.com/odvcencio/sift/diff"

// Kind identifies what a node represents.
type Kind int

const (
	KindRoot Kind = iota
	KindFile
	KindContainer
	KindMember
	KindSection
	KindLine
	// KindBinary is the single non-selectable pseudo-node standing in for
	// a binary content or mode change.
	KindBinary
)

var kindNames = map[Kind]string{
	KindRoot:      "root",
	KindFile:      "file",
	KindContainer: "container",
	KindMember:    "member",
	KindSection:   "section",
	KindLine:      "line",
	KindBinary:    "binary",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// State is the tristate selection value.
type State int

const (
	Unchecked State = iota
	Checked
	Partial
)

var stateNames = map[State]string{
	Unchecked: "unchecked",
	Checked:   "checked",
	Partial:   "partial",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// NodeID is a stable index into the tree's arena.
type NodeID int

// None is the absent node reference.
const None NodeID = -1

// Step is one unit of a file's reconstruction walk: either a run of
// unchanged text emitted verbatim, or the line nodes of one changed group
// whose selection decides what is emitted.
type Step struct {
	Verbatim []string
	Lines    []NodeID
}

// Node is one tree entry. Kind-specific fields are only meaningful for the
// kinds noted; the shared base (spans, children, expansion, cached
// selection) applies to all.
type Node struct {
	Kind     Kind
	Parent   NodeID
	Children []NodeID

	// Line ranges in the old and new version; either may be empty for
	// pure additions or removals. Half-open, 0-indexed.
	OldSpan, NewSpan diff.Span

	// File: path of the file this subtree describes.
	Path string

	// Container/Member: declaration name and a short descriptor such as
	// the subkind or qualifier, for display.
	Name   string
	Detail string

	// Section: unchanged context lines around the change, display only.
	Before, After []string

	// Line: the changed line itself.
	Change diff.LineKind
	Text   string

	Expanded bool

	state  State
	leaves int // selectable Line descendants, including self for lines
}

// Tree is the arena. The zero value is not usable; NewTree adds the root.
type Tree struct {
	nodes []Node
	steps map[NodeID][]Step // reconstruction steps per file node
}

// NewTree returns a tree holding only the root node.
func NewTree() *Tree {
	t := &Tree{steps: make(map[NodeID][]Step)}
	t.nodes = append(t.nodes, Node{
		Kind:     KindRoot,
		Parent:   None,
		Expanded: true,
	})
	return t
}

// Root returns the root node's id.
func (t *Tree) Root() NodeID { return 0 }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Node returns the node for an id. The pointer stays valid until the next
// Add call.
func (t *Tree) Node(id NodeID) *Node {
	return &t.nodes[id]
}

// Valid reports whether id refers to a node in this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Add appends a node under parent and returns its id. Children appear in
// insertion order, which must be document order.
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.Parent = parent
	if n.Kind == KindLine {
		n.leaves = 1
	}
	t.nodes = append(t.nodes, n)
	p := &t.nodes[parent]
	p.Children = append(p.Children, id)
	return id
}

// SetSteps records the reconstruction walk for a file node.
func (t *Tree) SetSteps(file NodeID, steps []Step) {
	t.steps[file] = steps
}

// Steps returns the reconstruction walk for a file node.
func (t *Tree) Steps(file NodeID) []Step {
	return t.steps[file]
}

// Files returns the file nodes in document order.
func (t *Tree) Files() []NodeID {
	return t.nodes[0].Children
}

// Seal computes leaf counts and aggregate selection for the whole tree.
// Builders call it once after assembly; selection operations keep the
// caches current afterwards.
func (t *Tree) Seal() {
	t.seal(t.Root())
}

func (t *Tree) seal(id NodeID) {
	n := &t.nodes[id]
	if n.Kind == KindLine {
		return
	}
	n.leaves = 0
	for _, c := range n.Children {
		t.seal(c)
		n.leaves += t.nodes[c].leaves
	}
	n.state = t.aggregate(id)
}

// Depth returns the number of ancestors above the node.
func (t *Tree) Depth(id NodeID) int {
	d := 0
	for p := t.nodes[id].Parent; p != None; p = t.nodes[p].Parent {
		d++
	}
	return d
}
