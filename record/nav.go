package record

// Cursor is a focus position over the tree. Movement is expressed against
// the visible node order: collapsed subtrees are skipped, children of
// expanded nodes are visited depth-first.
type Cursor struct {
	tree *Tree
	at   NodeID
}

// NewCursor returns a cursor on the first file, or on the root for an
// empty tree.
func NewCursor(t *Tree) *Cursor {
	c := &Cursor{tree: t, at: t.Root()}
	if files := t.Files(); len(files) > 0 {
		c.at = files[0]
	}
	return c
}

// At returns the focused node.
func (c *Cursor) At() NodeID { return c.at }

// MoveTo focuses a node directly, expanding its ancestors so the focus
// stays visible.
func (c *Cursor) MoveTo(id NodeID) {
	c.tree.revealPath(id)
	c.at = id
}

// MoveNext advances to the next visible node. At the end of the tree the
// cursor stays put.
func (c *Cursor) MoveNext() {
	if next := c.tree.nextVisible(c.at); next != None {
		c.at = next
	}
}

// MovePrev steps to the previous visible node.
func (c *Cursor) MovePrev() {
	if prev := c.tree.prevVisible(c.at); prev != None && prev != c.tree.Root() {
		c.at = prev
	}
}

// MoveNextOfKind jumps to the next node of the same kind in document
// order, regardless of nesting depth, expanding ancestors as needed.
func (c *Cursor) MoveNextOfKind() {
	kind := c.tree.Node(c.at).Kind
	for id := c.tree.nextInDoc(c.at); id != None; id = c.tree.nextInDoc(id) {
		if c.tree.Node(id).Kind == kind {
			c.MoveTo(id)
			return
		}
	}
}

// MovePrevOfKind jumps to the previous node of the same kind.
func (c *Cursor) MovePrevOfKind() {
	kind := c.tree.Node(c.at).Kind
	for id := c.tree.prevInDoc(c.at); id != None && id != c.tree.Root(); id = c.tree.prevInDoc(id) {
		if c.tree.Node(id).Kind == kind {
			c.MoveTo(id)
			return
		}
	}
}

// Enter expands the focused node and descends to its first child, if any.
func (c *Cursor) Enter() {
	n := c.tree.Node(c.at)
	if len(n.Children) == 0 {
		return
	}
	c.tree.SetExpanded(c.at, true)
	c.at = n.Children[0]
}

// Exit ascends to the parent, stopping below the root.
func (c *Cursor) Exit() {
	p := c.tree.Node(c.at).Parent
	if p != None && p != c.tree.Root() {
		c.at = p
	}
}

// Toggle flips the focused node's selection.
func (c *Cursor) Toggle() {
	c.tree.Toggle(c.at)
}

// ToggleAndAdvance flips the focused node then moves to the next node in
// document order at the same depth, so repeated presses sweep through
// siblings and cousins. The cursor stays put at the last such node.
func (c *Cursor) ToggleAndAdvance() {
	c.tree.Toggle(c.at)
	depth := c.tree.Depth(c.at)
	for id := c.tree.nextInDoc(c.at); id != None; id = c.tree.nextInDoc(id) {
		if c.tree.Depth(id) == depth {
			c.MoveTo(id)
			return
		}
	}
}

// nextInDoc walks the full tree in depth-first document order, ignoring
// expansion.
func (t *Tree) nextInDoc(id NodeID) NodeID {
	if n := t.Node(id); len(n.Children) > 0 {
		return n.Children[0]
	}
	return t.nextSkippingChildren(id)
}

func (t *Tree) nextSkippingChildren(id NodeID) NodeID {
	for id != None {
		parent := t.Node(id).Parent
		if parent == None {
			return None
		}
		siblings := t.Node(parent).Children
		for i, sib := range siblings {
			if sib == id && i+1 < len(siblings) {
				return siblings[i+1]
			}
		}
		id = parent
	}
	return None
}

// prevInDoc is the reverse of nextInDoc.
func (t *Tree) prevInDoc(id NodeID) NodeID {
	parent := t.Node(id).Parent
	if parent == None {
		return None
	}
	siblings := t.Node(parent).Children
	for i, sib := range siblings {
		if sib == id {
			if i == 0 {
				return parent
			}
			return t.lastInSubtree(siblings[i-1])
		}
	}
	return None
}

func (t *Tree) lastInSubtree(id NodeID) NodeID {
	for {
		children := t.Node(id).Children
		if len(children) == 0 {
			return id
		}
		id = children[len(children)-1]
	}
}

// nextVisible is nextInDoc restricted to expanded subtrees.
func (t *Tree) nextVisible(id NodeID) NodeID {
	if n := t.Node(id); n.Expanded && len(n.Children) > 0 {
		return n.Children[0]
	}
	return t.nextSkippingChildren(id)
}

// prevVisible returns the node shown immediately above id.
func (t *Tree) prevVisible(id NodeID) NodeID {
	parent := t.Node(id).Parent
	if parent == None {
		return None
	}
	siblings := t.Node(parent).Children
	for i, sib := range siblings {
		if sib == id {
			if i == 0 {
				return parent
			}
			return t.lastVisibleInSubtree(siblings[i-1])
		}
	}
	return None
}

func (t *Tree) lastVisibleInSubtree(id NodeID) NodeID {
	for {
		n := t.Node(id)
		if !n.Expanded || len(n.Children) == 0 {
			return id
		}
		id = n.Children[len(n.Children)-1]
	}
}

// revealPath expands every ancestor of id.
func (t *Tree) revealPath(id NodeID) {
	for p := t.Node(id).Parent; p != None; p = t.Node(p).Parent {
		t.Node(p).Expanded = true
	}
}
