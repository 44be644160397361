// Package sift builds a selectable change tree from pairs of file
// versions. Each file's line diff is merged with a syntax-aware outline of
// its declarations, producing a tree of files, containers, members,
// sections, and lines whose selection state reconstructs any mixture of
// the two versions.
package sift

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/grammars"
	"github.com/odvcencio/sift/record"
	"github.com/odvcencio/sift/semantic"
)

const (
	// DefaultContextLines is the unchanged-context window shown around
	// each section.
	DefaultContextLines = 3
	// DefaultLineThreshold is the per-version line count above which a
	// file skips semantic grouping and gets a flat section list.
	DefaultLineThreshold = 5000
	// DefaultParseTimeout bounds the semantic parse of one file. A file
	// that blows the deadline gets the flat layout, the build continues.
	DefaultParseTimeout = 5 * time.Second
)

// FileInput is one file to present for selection. Either side may be nil
// for a created or deleted file.
type FileInput struct {
	Path string
	Old  []byte
	New  []byte
}

// Options configure Build. Use the With functions to change defaults.
type Options struct {
	contextLines  int
	lineThreshold int
	maxParseBytes int
	parseTimeout  time.Duration
	workers       int
	registry      *grammars.Registry
	logger        *slog.Logger
}

// Option adjusts Build behavior.
type Option func(*Options)

// WithContextLines sets the unchanged-context window around sections.
func WithContextLines(n int) Option {
	return func(o *Options) { o.contextLines = n }
}

// WithLineThreshold sets the line count above which files fall back to a
// flat section list.
func WithLineThreshold(n int) Option {
	return func(o *Options) { o.lineThreshold = n }
}

// WithMaxParseBytes caps the source size handed to the syntax parser.
func WithMaxParseBytes(n int) Option {
	return func(o *Options) { o.maxParseBytes = n }
}

// WithParseTimeout bounds each file's semantic parse; zero disables the
// deadline.
func WithParseTimeout(d time.Duration) Option {
	return func(o *Options) { o.parseTimeout = d }
}

// WithWorkers sets how many files are processed concurrently.
func WithWorkers(n int) Option {
	return func(o *Options) { o.workers = n }
}

// WithRegistry replaces the built-in language registry.
func WithRegistry(r *grammars.Registry) Option {
	return func(o *Options) { o.registry = r }
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func buildOptions(opts []Option) *Options {
	o := &Options{
		contextLines:  DefaultContextLines,
		lineThreshold: DefaultLineThreshold,
		maxParseBytes: semantic.DefaultMaxParseBytes,
		parseTimeout:  DefaultParseTimeout,
		workers:       runtime.GOMAXPROCS(0),
		registry:      grammars.Builtin(),
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		o.workers = 1
	}
	return o
}

// Build diffs and analyzes every input concurrently, then assembles the
// change tree in input order. Files whose versions are identical are left
// out entirely. The returned tree starts fully unchecked.
func Build(ctx context.Context, files []FileInput, opts ...Option) (*record.Tree, error) {
	o := buildOptions(opts)
	plans := make([]*filePlan, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, in := range files {
		i, in := i, in
		g.Go(func() error {
			p, err := analyze(ctx, o, in)
			if err != nil {
				return fmt.Errorf("%s: %w", in.Path, err)
			}
			plans[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := record.NewTree()
	for _, p := range plans {
		if p != nil {
			assemble(t, p)
		}
	}
	t.Seal()
	return t, nil
}

// filePlan is the per-file analysis result, produced concurrently and
// consumed by the sequential tree assembly.
type filePlan struct {
	input    FileInput
	binary   bool
	sections []diff.Section
	// matches is nil when the file uses the flat fallback layout.
	matches []semantic.ContainerMatch
}

// analyze produces a file's plan: binary check, line diff, and, unless a
// fallback applies, syntax outlines of both versions matched into
// container pairs. A nil plan with nil error means the file is unchanged.
func analyze(ctx context.Context, o *Options, in FileInput) (*filePlan, error) {
	if bytes.Equal(in.Old, in.New) {
		return nil, nil
	}
	if diff.IsBinary(in.Old) || diff.IsBinary(in.New) {
		return &filePlan{input: in, binary: true}, nil
	}

	segs := diff.Compute(string(in.Old), string(in.New))
	sections := diff.Sections(segs, o.contextLines)
	if len(sections) == 0 {
		return nil, nil
	}
	p := &filePlan{input: in, sections: sections}

	probe := in.New
	if len(probe) == 0 {
		probe = in.Old
	}
	g := o.registry.DetectContent(in.Path, probe)
	if g == nil {
		return p, nil
	}
	if n := max(lineCount(in.Old), lineCount(in.New)); n > o.lineThreshold {
		o.logger.Debug("flat layout for oversized file",
			slog.String("path", in.Path), slog.Int("lines", n))
		return p, nil
	}

	// Parse both versions; a syntax, size, or deadline failure on either
	// side drops the whole file to the flat layout so the two outlines
	// stay comparable.
	parseCtx := ctx
	cancel := context.CancelFunc(func() {})
	if o.parseTimeout > 0 {
		parseCtx, cancel = context.WithTimeout(ctx, o.parseTimeout)
	}
	defer cancel()

	var oldSum, newSum *semantic.Summary
	pg, pctx := errgroup.WithContext(parseCtx)
	pg.Go(func() error {
		var err error
		oldSum, err = semantic.Parse(pctx, g, in.Old, o.maxParseBytes)
		return err
	})
	pg.Go(func() error {
		var err error
		newSum, err = semantic.Parse(pctx, g, in.New, o.maxParseBytes)
		return err
	})
	if err := pg.Wait(); err != nil {
		timedOut := parseCtx.Err() != nil && ctx.Err() == nil
		if semantic.Recoverable(err) || timedOut {
			o.logger.Debug("flat layout after parse failure",
				slog.String("path", in.Path), slog.String("error", err.Error()))
			return p, nil
		}
		return nil, err
	}

	p.matches = semantic.Match(oldSum, newSum)
	return p, nil
}

func lineCount(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	n := bytes.Count(content, []byte("\n"))
	if content[len(content)-1] != '\n' {
		n++
	}
	return n
}
