package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/odvcencio/sift/diff"
)

// ErrCorrupt reports an internal selection invariant violation found
// during reconstruction. The tree is left untouched.
var ErrCorrupt = errors.New("selection state corrupt")

// Reconstruct assembles the accepted content for a file node by replaying
// its reconstruction steps: unchanged runs are copied verbatim, removed
// lines are kept while unchecked, and added lines are emitted once
// checked. With everything checked the result is the new version byte for
// byte; with nothing checked it is the old version.
func (t *Tree) Reconstruct(file NodeID) ([]byte, error) {
	n := t.Node(file)
	if n.Kind != KindFile {
		return nil, fmt.Errorf("reconstruct: node %d is a %s, not a file", file, n.Kind)
	}
	var b strings.Builder
	for _, step := range t.steps[file] {
		if step.Lines == nil {
			for _, chunk := range step.Verbatim {
				b.WriteString(chunk)
			}
			continue
		}
		for _, id := range step.Lines {
			line := t.Node(id)
			if line.Kind != KindLine {
				return nil, fmt.Errorf("%w: step references node %d of kind %s", ErrCorrupt, id, line.Kind)
			}
			switch line.state {
			case Checked:
				if line.Change == diff.LineAdded {
					b.WriteString(line.Text)
				}
			case Unchecked:
				if line.Change == diff.LineRemoved {
					b.WriteString(line.Text)
				}
			default:
				return nil, fmt.Errorf("%w: line %d holds aggregate state %s", ErrCorrupt, id, line.state)
			}
		}
	}
	return []byte(b.String()), nil
}
