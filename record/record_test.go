package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/odvcencio/sift/diff"
)

// buildFixture assembles one file with two containers:
//
//	a.txt
//	  foo
//	    section: -old1 +new1
//	  bar
//	    section: +new2
//
// old = "ctx1\nold1\nctx2\n", new = "ctx1\nnew1\nctx2\nnew2\n".
type fixture struct {
	tree             *Tree
	file, foo, bar   NodeID
	sec1, sec2       NodeID
	lineOld, lineNew NodeID
	lineNew2         NodeID
}

func buildFixture() *fixture {
	t := NewTree()
	f := &fixture{tree: t}
	f.file = t.Add(t.Root(), Node{Kind: KindFile, Path: "a.txt"})
	f.foo = t.Add(f.file, Node{Kind: KindContainer, Name: "foo", Detail: "function"})
	f.sec1 = t.Add(f.foo, Node{Kind: KindSection, Before: []string{"ctx1\n"}})
	f.lineOld = t.Add(f.sec1, Node{Kind: KindLine, Change: diff.LineRemoved, Text: "old1\n"})
	f.lineNew = t.Add(f.sec1, Node{Kind: KindLine, Change: diff.LineAdded, Text: "new1\n"})
	f.bar = t.Add(f.file, Node{Kind: KindContainer, Name: "bar", Detail: "function"})
	f.sec2 = t.Add(f.bar, Node{Kind: KindSection, Before: []string{"ctx2\n"}})
	f.lineNew2 = t.Add(f.sec2, Node{Kind: KindLine, Change: diff.LineAdded, Text: "new2\n"})
	t.SetSteps(f.file, []Step{
		{Verbatim: []string{"ctx1\n"}},
		{Lines: []NodeID{f.lineOld, f.lineNew}},
		{Verbatim: []string{"ctx2\n"}},
		{Lines: []NodeID{f.lineNew2}},
	})
	t.Seal()
	return f
}

func TestInitialStateUnchecked(t *testing.T) {
	f := buildFixture()
	for _, id := range []NodeID{f.file, f.foo, f.sec1, f.lineOld, f.lineNew} {
		if got := f.tree.State(id); got != Unchecked {
			t.Errorf("node %d: got %v, want Unchecked", id, got)
		}
	}
}

func TestReconstructNothingChecked(t *testing.T) {
	f := buildFixture()
	got, err := f.tree.Reconstruct(f.file)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	want := []byte("ctx1\nold1\nctx2\n")
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReconstructEverythingChecked(t *testing.T) {
	f := buildFixture()
	f.tree.SetAll(true)
	got, err := f.tree.Reconstruct(f.file)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	want := []byte("ctx1\nnew1\nctx2\nnew2\n")
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := f.tree.State(f.tree.Root()); got != Checked {
		t.Errorf("root state = %v, want Checked", got)
	}
}

func TestReconstructMixedSelection(t *testing.T) {
	f := buildFixture()
	// Accept only the replacement in foo: drop old1, take new1.
	f.tree.Toggle(f.sec1)
	got, err := f.tree.Reconstruct(f.file)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	want := []byte("ctx1\nnew1\nctx2\n")
	if !bytes.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPartialPropagation(t *testing.T) {
	f := buildFixture()
	f.tree.Toggle(f.lineNew)
	tests := []struct {
		name string
		id   NodeID
		want State
	}{
		{"toggled line", f.lineNew, Checked},
		{"sibling line", f.lineOld, Unchecked},
		{"section", f.sec1, Partial},
		{"container", f.foo, Partial},
		{"other container", f.bar, Unchecked},
		{"file", f.file, Partial},
		{"root", f.tree.Root(), Partial},
	}
	for _, tt := range tests {
		if got := f.tree.State(tt.id); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTogglePartialResolvesChecked(t *testing.T) {
	f := buildFixture()
	f.tree.Toggle(f.lineNew)
	if got := f.tree.State(f.sec1); got != Partial {
		t.Fatalf("section state = %v, want Partial", got)
	}
	f.tree.Toggle(f.sec1)
	if got := f.tree.State(f.sec1); got != Checked {
		t.Errorf("section state = %v, want Checked", got)
	}
	if got := f.tree.State(f.lineOld); got != Checked {
		t.Errorf("line state = %v, want Checked", got)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	f := buildFixture()
	f.tree.Toggle(f.foo)
	if got := f.tree.State(f.foo); got != Checked {
		t.Fatalf("after first toggle: %v, want Checked", got)
	}
	f.tree.Toggle(f.foo)
	if got := f.tree.State(f.foo); got != Unchecked {
		t.Errorf("after second toggle: %v, want Unchecked", got)
	}
	if got := f.tree.State(f.file); got != Unchecked {
		t.Errorf("file state: %v, want Unchecked", got)
	}
}

func TestToggleAll(t *testing.T) {
	f := buildFixture()
	f.tree.ToggleAll()
	if got := f.tree.State(f.tree.Root()); got != Checked {
		t.Fatalf("after ToggleAll from empty: %v, want Checked", got)
	}
	f.tree.ToggleAll()
	if got := f.tree.State(f.tree.Root()); got != Unchecked {
		t.Errorf("after second ToggleAll: %v, want Unchecked", got)
	}
}

func TestToggleAllFromMixedClearsSelection(t *testing.T) {
	f := buildFixture()
	f.tree.Toggle(f.lineNew2)
	if got := f.tree.State(f.tree.Root()); got != Partial {
		t.Fatalf("root = %v, want Partial before ToggleAll", got)
	}
	// A mixed selection clears; only a fully empty one fills. This is the
	// opposite of Toggle's resolve-toward-Checked rule.
	f.tree.ToggleAll()
	if got := f.tree.State(f.tree.Root()); got != Unchecked {
		t.Errorf("after ToggleAll from mixed: %v, want Unchecked", got)
	}
	if got := f.tree.State(f.lineNew2); got != Unchecked {
		t.Errorf("line after ToggleAll from mixed: %v, want Unchecked", got)
	}
}

func TestEmptyContainerDoesNotVote(t *testing.T) {
	f := buildFixture()
	empty := f.tree.Add(f.file, Node{Kind: KindContainer, Name: "unchanged"})
	f.tree.Seal()
	f.tree.Set(f.foo, true)
	f.tree.Set(f.bar, true)
	if got := f.tree.State(empty); got != Unchecked {
		t.Errorf("empty container state: %v, want Unchecked", got)
	}
	if got := f.tree.State(f.file); got != Checked {
		t.Errorf("file state: %v, want Checked (empty container must not force Partial)", got)
	}
}

func TestExpansionDoesNotAffectSelection(t *testing.T) {
	f := buildFixture()
	f.tree.Toggle(f.foo)
	before := f.tree.State(f.file)
	f.tree.SetExpanded(f.foo, true)
	f.tree.ToggleExpanded(f.foo)
	f.tree.SetExpanded(f.file, false)
	if got := f.tree.State(f.file); got != before {
		t.Errorf("selection changed with expansion: %v, want %v", got, before)
	}
	if got := f.tree.State(f.foo); got != Checked {
		t.Errorf("collapsed container deselected: %v, want Checked", got)
	}
}

func TestReconstructRejectsNonFile(t *testing.T) {
	f := buildFixture()
	if _, err := f.tree.Reconstruct(f.foo); err == nil {
		t.Fatal("Reconstruct on a container: want error")
	}
}

func TestReconstructCorruptLineState(t *testing.T) {
	f := buildFixture()
	f.tree.Node(f.lineOld).state = Partial
	_, err := f.tree.Reconstruct(f.file)
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("got %v, want ErrCorrupt", err)
	}
}

func TestCursorStartsAtFirstFile(t *testing.T) {
	f := buildFixture()
	c := NewCursor(f.tree)
	if c.At() != f.file {
		t.Errorf("cursor at %d, want file %d", c.At(), f.file)
	}
}

func TestMoveNextRespectsCollapse(t *testing.T) {
	f := buildFixture()
	other := f.tree.Add(f.tree.Root(), Node{Kind: KindFile, Path: "b.txt"})
	f.tree.Seal()
	c := NewCursor(f.tree)
	// Files start collapsed, so the next visible node is the second file.
	c.MoveNext()
	if c.At() != other {
		t.Errorf("cursor at %d, want %d", c.At(), other)
	}
	c.MovePrev()
	if c.At() != f.file {
		t.Errorf("cursor at %d, want %d", c.At(), f.file)
	}
}

func TestEnterExpandsAndDescends(t *testing.T) {
	f := buildFixture()
	c := NewCursor(f.tree)
	c.Enter()
	if c.At() != f.foo {
		t.Fatalf("cursor at %d, want container %d", c.At(), f.foo)
	}
	if !f.tree.Node(f.file).Expanded {
		t.Error("entered node not expanded")
	}
	c.Exit()
	if c.At() != f.file {
		t.Errorf("cursor at %d, want file %d", c.At(), f.file)
	}
}

func TestExitStopsBelowRoot(t *testing.T) {
	f := buildFixture()
	c := NewCursor(f.tree)
	c.Exit()
	if c.At() != f.file {
		t.Errorf("cursor at %d, want file %d", c.At(), f.file)
	}
}

func TestMoveNextOfKind(t *testing.T) {
	f := buildFixture()
	c := NewCursor(f.tree)
	c.Enter() // foo
	c.MoveNextOfKind()
	if c.At() != f.bar {
		t.Fatalf("cursor at %d, want container %d", c.At(), f.bar)
	}
	c.MovePrevOfKind()
	if c.At() != f.foo {
		t.Errorf("cursor at %d, want container %d", c.At(), f.foo)
	}
}

func TestMoveNextOfKindRevealsTarget(t *testing.T) {
	f := buildFixture()
	c := NewCursor(f.tree)
	c.MoveTo(f.sec1)
	f.tree.SetExpanded(f.bar, false)
	c.MoveNextOfKind()
	if c.At() != f.sec2 {
		t.Fatalf("cursor at %d, want section %d", c.At(), f.sec2)
	}
	if !f.tree.Node(f.bar).Expanded {
		t.Error("ancestor of jump target not revealed")
	}
}

func TestToggleAndAdvance(t *testing.T) {
	f := buildFixture()
	c := NewCursor(f.tree)
	c.MoveTo(f.foo)
	c.ToggleAndAdvance()
	if got := f.tree.State(f.foo); got != Checked {
		t.Errorf("foo state: %v, want Checked", got)
	}
	if c.At() != f.bar {
		t.Fatalf("cursor at %d, want %d", c.At(), f.bar)
	}
	c.ToggleAndAdvance()
	if got := f.tree.State(f.file); got != Checked {
		t.Errorf("file state: %v, want Checked", got)
	}
	// No further node at container depth; the cursor stays put.
	if c.At() != f.bar {
		t.Errorf("cursor at %d, want %d", c.At(), f.bar)
	}
}
