package sift

import (
	"fmt"
	"strings"

	udiff "github.com/sourcegraph/go-diff/diff"

	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/record"
)

// Patch renders the tree's current selection as a unified diff from each
// file's old version to its reconstructed content. Files whose selection
// reconstructs the old version exactly are omitted. Binary files are
// always omitted; selection cannot alter them.
func Patch(t *record.Tree, files []FileInput, opts ...Option) ([]byte, error) {
	o := buildOptions(opts)
	byPath := make(map[string]FileInput, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}

	var fds []*udiff.FileDiff
	for _, id := range t.Files() {
		n := t.Node(id)
		if len(n.Children) == 1 && t.Node(n.Children[0]).Kind == record.KindBinary {
			continue
		}
		in, ok := byPath[n.Path]
		if !ok {
			return nil, fmt.Errorf("patch: no input for %s", n.Path)
		}
		accepted, err := t.Reconstruct(id)
		if err != nil {
			return nil, fmt.Errorf("patch %s: %w", n.Path, err)
		}
		if string(accepted) == string(in.Old) {
			continue
		}
		fds = append(fds, &udiff.FileDiff{
			OrigName: "a/" + n.Path,
			NewName:  "b/" + n.Path,
			Hunks:    hunksBetween(string(in.Old), string(accepted), o.contextLines),
		})
	}
	if len(fds) == 0 {
		return nil, nil
	}
	return udiff.PrintMultiFileDiff(fds)
}

// hunksBetween converts the sectioned line diff of two texts into printable
// hunks, one per section.
func hunksBetween(oldText, newText string, context int) []*udiff.Hunk {
	sections := diff.Sections(diff.Compute(oldText, newText), context)
	hunks := make([]*udiff.Hunk, 0, len(sections))
	for _, sec := range sections {
		var body strings.Builder
		for _, ctx := range sec.Before {
			writeBodyLine(&body, ' ', ctx)
		}
		for _, ln := range sec.Lines {
			mark := byte('+')
			if ln.Kind == diff.LineRemoved {
				mark = '-'
			}
			writeBodyLine(&body, mark, ln.Text)
		}
		for _, ctx := range sec.After {
			writeBodyLine(&body, ' ', ctx)
		}
		origStart := sec.Old.Start - len(sec.Before) + 1
		origLines := len(sec.Before) + sec.Old.Len() + len(sec.After)
		if origLines == 0 {
			// A zero-count range is numbered by the line it applies
			// after, 1-indexed, which is the 0-indexed start itself.
			origStart = sec.Old.Start
		}
		newStart := sec.New.Start - len(sec.Before) + 1
		newLines := len(sec.Before) + sec.New.Len() + len(sec.After)
		if newLines == 0 {
			newStart = sec.New.Start
		}
		hunks = append(hunks, &udiff.Hunk{
			OrigStartLine: int32(origStart),
			OrigLines:     int32(origLines),
			NewStartLine:  int32(newStart),
			NewLines:      int32(newLines),
			Body:          []byte(body.String()),
		})
	}
	return hunks
}

const noNewlineMarker = `\ No newline at end of file`

func writeBodyLine(b *strings.Builder, mark byte, line string) {
	b.WriteByte(mark)
	b.WriteString(line)
	// Only a file's last line can lack a newline; the marker records it
	// so the patch does not misstate that line.
	if !strings.HasSuffix(line, "\n") {
		b.WriteByte('\n')
		b.WriteString(noNewlineMarker)
		b.WriteByte('\n')
	}
}
