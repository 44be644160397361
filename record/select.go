package record

// State returns the node's selection. For lines it is the line's own value;
// for interior nodes it is the cached aggregate over their selectable
// descendants. Nodes with no selectable descendants read as Unchecked.
func (t *Tree) State(id NodeID) State {
	return t.nodes[id].state
}

// Selectable reports whether the node carries its own selection bit.
// Only changed lines do; context, sections, and structure aggregate.
func (t *Tree) Selectable(id NodeID) bool {
	return t.nodes[id].Kind == KindLine
}

// Toggle flips the node's selection. A Partial aggregate resolves toward
// Checked. The new value is applied to every selectable descendant, and
// cached aggregates along the path to the root are updated.
func (t *Tree) Toggle(id NodeID) {
	target := Checked
	if t.nodes[id].state == Checked {
		target = Unchecked
	}
	t.Set(id, target == Checked)
}

// Set forces the node's subtree to checked or unchecked.
func (t *Tree) Set(id NodeID, checked bool) {
	target := Unchecked
	if checked {
		target = Checked
	}
	t.setSubtree(id, target)
	t.bubble(t.nodes[id].Parent)
}

// ToggleAll flips the entire tree: everything on only when nothing is on,
// otherwise everything off. Unlike Toggle, a mixed selection clears; that
// makes ToggleAll a reliable way to start over.
func (t *Tree) ToggleAll() {
	t.SetAll(t.nodes[t.Root()].state == Unchecked)
}

// SetAll forces every selectable node in the tree.
func (t *Tree) SetAll(checked bool) {
	t.Set(t.Root(), checked)
}

// SetExpanded records whether the node's children are shown. Expansion
// never affects selection.
func (t *Tree) SetExpanded(id NodeID, expanded bool) {
	t.nodes[id].Expanded = expanded
}

// ToggleExpanded flips the node's expansion.
func (t *Tree) ToggleExpanded(id NodeID) {
	t.nodes[id].Expanded = !t.nodes[id].Expanded
}

func (t *Tree) setSubtree(id NodeID, target State) {
	n := &t.nodes[id]
	if n.Kind == KindLine {
		n.state = target
		return
	}
	if n.leaves == 0 {
		// Nothing selectable below; the aggregate stays Unchecked.
		return
	}
	for _, c := range n.Children {
		t.setSubtree(c, target)
	}
	n.state = target
}

// bubble recomputes cached aggregates from id up to the root.
func (t *Tree) bubble(id NodeID) {
	for id != None {
		t.nodes[id].state = t.aggregate(id)
		id = t.nodes[id].Parent
	}
}

// aggregate derives an interior node's state from its children's caches.
// Children without selectable descendants do not vote.
func (t *Tree) aggregate(id NodeID) State {
	n := &t.nodes[id]
	if n.Kind == KindLine {
		return n.state
	}
	seen := false
	var first State
	for _, c := range n.Children {
		child := &t.nodes[c]
		if child.leaves == 0 {
			continue
		}
		if !seen {
			first = child.state
			seen = true
			continue
		}
		if child.state != first || child.state == Partial {
			return Partial
		}
	}
	if !seen {
		return Unchecked
	}
	if first == Partial {
		return Partial
	}
	return first
}
