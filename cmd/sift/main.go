// Command sift compares two files or two directory trees and prints the
// resulting change tree, grouped by the declarations each change falls in.
// With -patch it emits a unified diff of the full selection instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/odvcencio/sift"
	"github.com/odvcencio/sift/diff"
	"github.com/odvcencio/sift/record"
)

func main() {
	patch := flag.Bool("patch", false, "print a unified diff of all changes instead of the tree")
	contextLines := flag.Int("context", sift.DefaultContextLines, "unchanged context lines around each change")
	workers := flag.Int("workers", 0, "concurrent file analyses (0 = GOMAXPROCS)")
	verbose := flag.Bool("v", false, "log parse diagnostics")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: sift [flags] <old> <new>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []sift.Option{
		sift.WithContextLines(*contextLines),
		sift.WithLogger(logger),
	}
	if *workers > 0 {
		opts = append(opts, sift.WithWorkers(*workers))
	}

	if err := run(ctx, flag.Arg(0), flag.Arg(1), *patch, opts); err != nil {
		fmt.Fprintf(os.Stderr, "sift: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, oldPath, newPath string, patch bool, opts []sift.Option) error {
	inputs, err := collect(oldPath, newPath)
	if err != nil {
		return err
	}
	tree, err := sift.Build(ctx, inputs, opts...)
	if err != nil {
		return err
	}

	if patch {
		tree.SetAll(true)
		out, err := sift.Patch(tree, inputs, opts...)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	printTree(tree)
	return nil
}

// collect builds the input pairs. Two regular files compare directly; two
// directories compare the union of their relative paths.
func collect(oldPath, newPath string) ([]sift.FileInput, error) {
	oldInfo, err := os.Stat(oldPath)
	if err != nil {
		return nil, err
	}
	newInfo, err := os.Stat(newPath)
	if err != nil {
		return nil, err
	}
	if oldInfo.IsDir() != newInfo.IsDir() {
		return nil, fmt.Errorf("%s and %s must both be files or both be directories", oldPath, newPath)
	}

	if !oldInfo.IsDir() {
		oldBytes, err := os.ReadFile(oldPath)
		if err != nil {
			return nil, err
		}
		newBytes, err := os.ReadFile(newPath)
		if err != nil {
			return nil, err
		}
		return []sift.FileInput{{Path: newPath, Old: oldBytes, New: newBytes}}, nil
	}

	paths := map[string]bool{}
	for _, root := range []string{oldPath, newPath} {
		if err := listFiles(root, paths); err != nil {
			return nil, err
		}
	}
	rels := make([]string, 0, len(paths))
	for rel := range paths {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	inputs := make([]sift.FileInput, 0, len(rels))
	for _, rel := range rels {
		in := sift.FileInput{Path: rel}
		if b, err := os.ReadFile(filepath.Join(oldPath, rel)); err == nil {
			in.Old = b
		}
		if b, err := os.ReadFile(filepath.Join(newPath, rel)); err == nil {
			in.New = b
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func listFiles(root string, into map[string]bool) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if name == ".git" || name == "node_modules" || name == "vendor" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		into[rel] = true
		return nil
	})
}

func printTree(t *record.Tree) {
	for _, file := range t.Files() {
		printNode(t, file, 0)
	}
}

func printNode(t *record.Tree, id record.NodeID, depth int) {
	n := t.Node(id)
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case record.KindFile:
		fmt.Printf("%s%s\n", indent, n.Path)
	case record.KindBinary:
		fmt.Printf("%s(binary)\n", indent)
	case record.KindContainer, record.KindMember:
		fmt.Printf("%s%s %s\n", indent, n.Detail, n.Name)
	case record.KindSection:
		fmt.Printf("%s@@ -%d,%d +%d,%d @@\n", indent,
			n.OldSpan.Start+1, n.OldSpan.Len(), n.NewSpan.Start+1, n.NewSpan.Len())
	case record.KindLine:
		mark := "+"
		if n.Change == diff.LineRemoved {
			mark = "-"
		}
		fmt.Printf("%s%s%s", indent, mark, n.Text)
		if !strings.HasSuffix(n.Text, "\n") {
			fmt.Println()
		}
		return
	}
	for _, c := range n.Children {
		printNode(t, c, depth+1)
	}
}
