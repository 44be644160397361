// Package diff computes line-level differences between two versions of a
// file and groups the changed lines into selectable sections.
package diff

import (
	"bytes"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Span is a half-open line interval [Start, End), 0-indexed.
type Span struct {
	Start, End int
}

// Len returns the number of lines covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers no lines.
func (s Span) Empty() bool { return s.End <= s.Start }

// Contains reports whether other lies entirely within s. An empty other
// span is contained if its position falls inside s.
func (s Span) Contains(other Span) bool {
	if other.Empty() {
		return other.Start >= s.Start && other.Start <= s.End
	}
	return other.Start >= s.Start && other.End <= s.End
}

// Op classifies a diff segment.
type Op int

const (
	// OpEqual marks lines present in both versions.
	OpEqual Op = iota
	// OpRemoved marks lines present only in the old version.
	OpRemoved
	// OpAdded marks lines present only in the new version.
	OpAdded
)

// Segment is a run of consecutive lines sharing one Op in the unified
// alignment of the two versions. Lines keep their trailing newline so that
// concatenating segments reproduces the input byte for byte; only the last
// line of a file may lack one.
type Segment struct {
	Op    Op
	Lines []string
	Old   Span // old-side lines covered; empty for OpAdded
	New   Span // new-side lines covered; empty for OpRemoved
}

// LineKind classifies a changed line within a section.
type LineKind int

const (
	// LineRemoved is a line deleted from the old version.
	LineRemoved LineKind = iota
	// LineAdded is a line introduced in the new version.
	LineAdded
)

// Line is a single selectable changed line.
type Line struct {
	Kind LineKind
	Text string
	// OldLine and NewLine are the 0-indexed positions in the respective
	// version; -1 on the side the line does not exist in.
	OldLine, NewLine int
}

// Section is a contiguous group of changed lines together with a small
// window of unchanged context on either side. Context lines are display
// only and never selectable.
type Section struct {
	Old, New      Span // changed spans on each side; either may be empty
	Before, After []string
	Lines         []Line
}

// Compute aligns the two texts line by line and returns the ordered run of
// segments. Identical inputs yield a single OpEqual segment (or none for
// two empty files). The result is deterministic for a given input pair.
func Compute(oldText, newText string) []Segment {
	if oldText == newText {
		if oldText == "" {
			return nil
		}
		lines := SplitLines(oldText)
		return []Segment{{
			Op:    OpEqual,
			Lines: lines,
			Old:   Span{0, len(lines)},
			New:   Span{0, len(lines)},
		}}
	}

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // never bail out early; boundaries must be stable
	c1, c2, lineArr := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(c1, c2, false), lineArr)

	var segs []Segment
	oldAt, newAt := 0, 0
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		lines := SplitLines(d.Text)
		seg := Segment{Lines: lines}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			seg.Op = OpEqual
			seg.Old = Span{oldAt, oldAt + len(lines)}
			seg.New = Span{newAt, newAt + len(lines)}
			oldAt += len(lines)
			newAt += len(lines)
		case diffmatchpatch.DiffDelete:
			seg.Op = OpRemoved
			seg.Old = Span{oldAt, oldAt + len(lines)}
			seg.New = Span{newAt, newAt}
			oldAt += len(lines)
		case diffmatchpatch.DiffInsert:
			seg.Op = OpAdded
			seg.Old = Span{oldAt, oldAt}
			seg.New = Span{newAt, newAt + len(lines)}
			newAt += len(lines)
		}
		segs = append(segs, seg)
	}
	return segs
}

// Sections groups each maximal run of changed segments into a Section with
// up to context unchanged lines of display context on either side.
func Sections(segs []Segment, context int) []Section {
	var sections []Section
	for i := 0; i < len(segs); {
		if segs[i].Op == OpEqual {
			i++
			continue
		}

		// Extend over the whole changed run.
		j := i
		for j < len(segs) && segs[j].Op != OpEqual {
			j++
		}

		sec := Section{
			Old: Span{segs[i].Old.Start, segs[i].Old.Start},
			New: Span{segs[i].New.Start, segs[i].New.Start},
		}
		for _, seg := range segs[i:j] {
			if !seg.Old.Empty() {
				sec.Old.End = seg.Old.End
			}
			if !seg.New.Empty() {
				sec.New.End = seg.New.End
			}
			for k, text := range seg.Lines {
				switch seg.Op {
				case OpRemoved:
					sec.Lines = append(sec.Lines, Line{
						Kind:    LineRemoved,
						Text:    text,
						OldLine: seg.Old.Start + k,
						NewLine: -1,
					})
				case OpAdded:
					sec.Lines = append(sec.Lines, Line{
						Kind:    LineAdded,
						Text:    text,
						OldLine: -1,
						NewLine: seg.New.Start + k,
					})
				}
			}
		}

		if context > 0 {
			if i > 0 {
				prev := segs[i-1].Lines
				from := len(prev) - context
				if from < 0 {
					from = 0
				}
				sec.Before = append(sec.Before, prev[from:]...)
			}
			if j < len(segs) {
				next := segs[j].Lines
				to := context
				if to > len(next) {
					to = len(next)
				}
				sec.After = append(sec.After, next[:to]...)
			}
		}

		sections = append(sections, sec)
		i = j
	}
	return sections
}

// IsBinary reports whether data looks like binary content, using the git
// heuristic of a NUL byte within the leading window.
func IsBinary(data []byte) bool {
	window := data
	if len(window) > 8000 {
		window = window[:8000]
	}
	return bytes.IndexByte(window, 0) >= 0
}

// SplitLines splits text into lines, each keeping its trailing newline.
// A final line without a newline is kept as-is.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	var lines []string
	for len(text) > 0 {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i+1])
		text = text[i+1:]
	}
	return lines
}
