package sift

import (
	"sort"

	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/record"
	"github.com/odvcencio/sift/semantic"
)

// assemble turns one file plan into tree nodes under the root. Sections
// are parented on the innermost matched declaration whose range covers
// them; the rest sit directly under the file. The file's reconstruction
// steps are recorded in original line order regardless of how the tree
// groups its sections.
func assemble(t *record.Tree, p *filePlan) {
	oldLines := diff.SplitLines(string(p.input.Old))
	file := t.Add(t.Root(), record.Node{
		Kind:    record.KindFile,
		Path:    p.input.Path,
		OldSpan: diff.Span{End: len(oldLines)},
		NewSpan: diff.Span{End: lineCount(p.input.New)},
	})

	if p.binary {
		t.Add(file, record.Node{Kind: record.KindBinary, Path: p.input.Path})
		// Selection cannot split binary content; reconstruction keeps
		// the old bytes.
		t.SetSteps(file, []record.Step{{Verbatim: []string{string(p.input.Old)}}})
		return
	}

	// Place each section, then emit file children ordered by position so
	// containers and stray sections interleave the way the file reads.
	targets := placeSections(p.sections, p.matches)
	lineIDs := make([][]record.NodeID, len(p.sections))

	for _, e := range fileOrder(p.sections, p.matches, targets) {
		if e.match < 0 {
			sec := p.sections[e.section]
			_, ids := addSection(t, file, sec)
			lineIDs[e.section] = ids
			continue
		}
		addContainer(t, file, p, e.match, targets, lineIDs)
	}

	t.SetSteps(file, buildSteps(oldLines, p.sections, lineIDs))
}

// target says where a section lands: the match and member indices, or -1
// for file level.
type target struct {
	match  int
	member int
}

func placeSections(sections []diff.Section, matches []semantic.ContainerMatch) []target {
	targets := make([]target, len(sections))
	for i, sec := range sections {
		targets[i] = target{match: -1, member: -1}
		best := -1
		bestLen := 0
		for mi, m := range matches {
			span, ok := coveringSpan(m.Status, m.OldSpan, m.NewSpan, sec)
			if !ok {
				continue
			}
			if best < 0 || span.Len() < bestLen {
				best, bestLen = mi, span.Len()
			}
		}
		if best < 0 {
			continue
		}
		targets[i].match = best
		for mj, mm := range matches[best].Members {
			if _, ok := coveringSpan(mm.Status, mm.OldSpan, mm.NewSpan, sec); ok {
				targets[i].member = mj
				break
			}
		}
	}
	return targets
}

// coveringSpan returns the span a declaration is tested against for a
// given section, and whether it covers the section's changed lines. Paired
// declarations are tested on the new side, or the old side for pure
// removals; one-sided declarations use their only span.
func coveringSpan(st semantic.Status, oldSpan, newSpan diff.Span, sec diff.Section) (diff.Span, bool) {
	switch st {
	case semantic.StatusAdded:
		return newSpan, newSpan.Contains(sec.New)
	case semantic.StatusRemoved:
		return oldSpan, oldSpan.Contains(sec.Old)
	default:
		if sec.New.Empty() && !sec.Old.Empty() {
			return oldSpan, oldSpan.Contains(sec.Old)
		}
		return newSpan, newSpan.Contains(sec.New)
	}
}

// fileEntry is one direct child of the file in display order: a container
// (match >= 0) or a file-level section.
type fileEntry struct {
	pos     int
	match   int
	section int
}

func fileOrder(sections []diff.Section, matches []semantic.ContainerMatch, targets []target) []fileEntry {
	var entries []fileEntry
	seen := make(map[int]bool)
	for i, tg := range targets {
		if tg.match < 0 {
			entries = append(entries, fileEntry{pos: sectionPos(sections[i]), match: -1, section: i})
			continue
		}
		if seen[tg.match] {
			continue
		}
		seen[tg.match] = true
		entries = append(entries, fileEntry{pos: matchPos(matches[tg.match]), match: tg.match})
	}
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].pos < entries[b].pos
	})
	return entries
}

func sectionPos(sec diff.Section) int {
	if sec.New.Empty() && !sec.Old.Empty() {
		return sec.Old.Start
	}
	return sec.New.Start
}

func matchPos(m semantic.ContainerMatch) int {
	if m.Status == semantic.StatusRemoved {
		return m.OldSpan.Start
	}
	return m.NewSpan.Start
}

// addContainer emits one container node with its member nodes and the
// sections placed inside it, in section order.
func addContainer(t *record.Tree, file record.NodeID, p *filePlan, mi int, targets []target, lineIDs [][]record.NodeID) {
	m := p.matches[mi]
	container := t.Add(file, record.Node{
		Kind:    record.KindContainer,
		Name:    m.Name,
		Detail:  describe(m.Kind.String(), m.Qualifier),
		OldSpan: m.OldSpan,
		NewSpan: m.NewSpan,
	})
	memberNodes := make(map[int]record.NodeID)
	for si, tg := range targets {
		if tg.match != mi {
			continue
		}
		parent := container
		if tg.member >= 0 {
			id, ok := memberNodes[tg.member]
			if !ok {
				mm := m.Members[tg.member]
				id = t.Add(container, record.Node{
					Kind:    record.KindMember,
					Name:    mm.Name,
					Detail:  mm.Kind.String(),
					OldSpan: mm.OldSpan,
					NewSpan: mm.NewSpan,
				})
				memberNodes[tg.member] = id
			}
			parent = id
		}
		_, ids := addSection(t, parent, p.sections[si])
		lineIDs[si] = ids
	}
}

func describe(kind, qualifier string) string {
	if qualifier == "" {
		return kind
	}
	return kind + " " + qualifier
}

// addSection emits a section node with its changed lines. Sections start
// expanded; their lines are always on show once the section is reached.
func addSection(t *record.Tree, parent record.NodeID, sec diff.Section) (record.NodeID, []record.NodeID) {
	node := t.Add(parent, record.Node{
		Kind:     record.KindSection,
		OldSpan:  sec.Old,
		NewSpan:  sec.New,
		Before:   sec.Before,
		After:    sec.After,
		Expanded: true,
	})
	ids := make([]record.NodeID, 0, len(sec.Lines))
	for _, ln := range sec.Lines {
		n := record.Node{Kind: record.KindLine, Change: ln.Kind, Text: ln.Text}
		if ln.OldLine >= 0 {
			n.OldSpan = diff.Span{Start: ln.OldLine, End: ln.OldLine + 1}
		}
		if ln.NewLine >= 0 {
			n.NewSpan = diff.Span{Start: ln.NewLine, End: ln.NewLine + 1}
		}
		ids = append(ids, t.Add(node, n))
	}
	return node, ids
}

// buildSteps interleaves the old version's unchanged runs with each
// section's line nodes, in old-document order. Sections arrive ordered by
// position, so a single sweep suffices.
func buildSteps(oldLines []string, sections []diff.Section, lineIDs [][]record.NodeID) []record.Step {
	var steps []record.Step
	prev := 0
	for i, sec := range sections {
		if sec.Old.Start > prev {
			steps = append(steps, record.Step{Verbatim: oldLines[prev:sec.Old.Start]})
		}
		steps = append(steps, record.Step{Lines: lineIDs[i]})
		prev = sec.Old.End
	}
	if prev < len(oldLines) {
		steps = append(steps, record.Step{Verbatim: oldLines[prev:]})
	}
	return steps
}
