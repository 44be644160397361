package semantic

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/odvcencio/sift/grammars"
)

const (
	// DefaultMaxParseBytes is the largest source a semantic parse will
	// accept per version.
	DefaultMaxParseBytes = 10 * 1024 * 1024

	// warnParseBytes is the size past which a parse is logged.
	warnParseBytes = 1 * 1024 * 1024
)

var (
	// ErrTooLarge means the source exceeded the parse size budget.
	ErrTooLarge = errors.New("source exceeds semantic parse size limit")

	// ErrSyntax means the parser could not produce a usable tree.
	ErrSyntax = errors.New("source has syntax errors")
)

// Recoverable reports whether a Parse failure should demote the file to a
// flat layout instead of aborting the build. Cancellation and deadline
// errors are not recoverable.
func Recoverable(err error) bool {
	return errors.Is(err, ErrSyntax) || errors.Is(err, ErrTooLarge)
}

// Parse parses one version of a file with the given grammar and returns its
// declaration summary. The context bounds the parse; cancellation or any
// failure yields an error, which callers treat as a fallback signal rather
// than a defect.
func Parse(ctx context.Context, g *grammars.Grammar, source []byte, maxBytes int) (*Summary, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxParseBytes
	}
	if len(source) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes over %d", ErrTooLarge, len(source), maxBytes)
	}
	if len(source) > warnParseBytes {
		slog.Debug("semantic: parsing large source",
			slog.String("grammar", g.Name),
			slog.Int("bytes", len(source)))
	}

	parser := sitter.NewParser()
	parser.SetLanguage(g.Language())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", g.Name, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, ErrSyntax
	}
	if root.HasError() {
		return nil, ErrSyntax
	}

	return &Summary{Containers: extract(root, source, g.Rules)}, nil
}
