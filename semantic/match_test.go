package semantic

import (
	"testing"

	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/grammars"
)

func fn(name string, start, end int) Container {
	return Container{Kind: grammars.KindFunction, Name: name, Span: diff.Span{Start: start, End: end}}
}

func TestMatchByNameIgnoresOrder(t *testing.T) {
	oldSum := &Summary{Containers: []Container{fn("A", 0, 3), fn("B", 3, 6), fn("C", 6, 9)}}
	newSum := &Summary{Containers: []Container{fn("B", 0, 3), fn("C", 3, 6), fn("A", 6, 9)}}

	matches := Match(oldSum, newSum)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Status != StatusPaired {
			t.Errorf("%s: expected paired, got %v", m.Name, m.Status)
		}
	}
}

func TestMatchRemovedAndAdded(t *testing.T) {
	oldSum := &Summary{Containers: []Container{fn("gone", 0, 5), fn("stays", 5, 10)}}
	newSum := &Summary{Containers: []Container{fn("stays", 0, 5), fn("fresh", 5, 10)}}

	matches := Match(oldSum, newSum)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}

	byName := map[string]ContainerMatch{}
	for _, m := range matches {
		byName[m.Name] = m
	}
	if byName["gone"].Status != StatusRemoved {
		t.Errorf("gone: expected removed, got %v", byName["gone"].Status)
	}
	if byName["stays"].Status != StatusPaired {
		t.Errorf("stays: expected paired, got %v", byName["stays"].Status)
	}
	if byName["fresh"].Status != StatusAdded {
		t.Errorf("fresh: expected added, got %v", byName["fresh"].Status)
	}
}

func TestMatchDuplicateNamesPairPositionally(t *testing.T) {
	oldSum := &Summary{Containers: []Container{fn("f", 0, 3), fn("f", 3, 6)}}
	newSum := &Summary{Containers: []Container{fn("f", 0, 4), fn("f", 4, 8), fn("f", 8, 12)}}

	matches := Match(oldSum, newSum)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].OldSpan != (diff.Span{Start: 0, End: 3}) || matches[0].NewSpan != (diff.Span{Start: 0, End: 4}) {
		t.Errorf("first duplicate paired wrong: %+v", matches[0])
	}
	if matches[1].OldSpan != (diff.Span{Start: 3, End: 6}) || matches[1].NewSpan != (diff.Span{Start: 4, End: 8}) {
		t.Errorf("second duplicate paired wrong: %+v", matches[1])
	}
	if matches[2].Status != StatusAdded {
		t.Errorf("third duplicate should be added, got %v", matches[2].Status)
	}
}

func TestMatchQualifierSeparatesIdentities(t *testing.T) {
	implPlain := Container{Kind: grammars.KindImpl, Name: "Point", Span: diff.Span{Start: 0, End: 10}}
	implTrait := Container{Kind: grammars.KindImpl, Name: "Point", Qualifier: "Display", Span: diff.Span{Start: 10, End: 20}}

	oldSum := &Summary{Containers: []Container{implPlain}}
	newSum := &Summary{Containers: []Container{implTrait}}

	matches := Match(oldSum, newSum)
	if len(matches) != 2 {
		t.Fatalf("expected removed+added for differing qualifiers, got %d matches", len(matches))
	}
	statuses := map[Status]bool{}
	for _, m := range matches {
		statuses[m.Status] = true
	}
	if !statuses[StatusRemoved] || !statuses[StatusAdded] {
		t.Errorf("expected one removed and one added, got %+v", matches)
	}
}

func TestMatchMembersScopedToContainer(t *testing.T) {
	mk := func(name string, members ...Member) Container {
		return Container{Kind: grammars.KindClass, Name: name, Members: members}
	}
	method := func(name string, start, end int) Member {
		return Member{Kind: grammars.KindMethod, Name: name, Span: diff.Span{Start: start, End: end}}
	}

	// "run" moves from class A to class B; it must not match across
	// containers, so it shows as removed in A and added in B.
	oldSum := &Summary{Containers: []Container{
		mk("A", method("run", 1, 4)),
		mk("B"),
	}}
	newSum := &Summary{Containers: []Container{
		mk("A"),
		mk("B", method("run", 6, 9)),
	}}

	matches := Match(oldSum, newSum)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	a, b := matches[0], matches[1]
	if len(a.Members) != 1 || a.Members[0].Status != StatusRemoved {
		t.Errorf("A.run should be removed, got %+v", a.Members)
	}
	if len(b.Members) != 1 || b.Members[0].Status != StatusAdded {
		t.Errorf("B.run should be added, got %+v", b.Members)
	}
}

func TestMatchAddedInsertedByNewPosition(t *testing.T) {
	oldSum := &Summary{Containers: []Container{fn("a", 0, 5), fn("c", 5, 10)}}
	newSum := &Summary{Containers: []Container{fn("a", 0, 5), fn("b", 5, 10), fn("c", 10, 15)}}

	matches := Match(oldSum, newSum)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	names := []string{matches[0].Name, matches[1].Name, matches[2].Name}
	if names[0] != "a" || names[1] != "b" || names[2] != "c" {
		t.Errorf("display order wrong: %v", names)
	}
}

func TestMatchNilSummaries(t *testing.T) {
	if got := Match(nil, nil); got != nil {
		t.Fatalf("expected no matches for two nil summaries, got %d", len(got))
	}

	newSum := &Summary{Containers: []Container{fn("only", 0, 5)}}
	matches := Match(nil, newSum)
	if len(matches) != 1 || matches[0].Status != StatusAdded {
		t.Fatalf("expected a single added container, got %+v", matches)
	}
}
