package grammars

import "testing"

func TestDetectGo(t *testing.T) {
	r := Builtin()
	g := r.Detect("cmd/server/main.go")
	if g == nil {
		t.Fatal("expected to detect Go for main.go, got nil")
	}
	if g.Name != "go" {
		t.Fatalf("expected grammar name %q, got %q", "go", g.Name)
	}
}

func TestDetectByExtension(t *testing.T) {
	r := Builtin()
	tests := []struct {
		path string
		want string
	}{
		{"lib.rs", "rust"},
		{"script.py", "python"},
		{"Main.java", "java"},
		{"App.kt", "kotlin"},
		{"build.gradle.kts", "kotlin"},
		{"index.js", "javascript"},
		{"index.tsx", "typescript"},
		{"main.tf", "hcl"},
		{"README.md", "markdown"},
		{"config.yaml", "yaml"},
		{"docker-compose.yml", "yaml"},
	}
	for _, tt := range tests {
		g := r.Detect(tt.path)
		if g == nil {
			t.Errorf("Detect(%q) = nil, want %q", tt.path, tt.want)
			continue
		}
		if g.Name != tt.want {
			t.Errorf("Detect(%q) = %q, want %q", tt.path, g.Name, tt.want)
		}
	}
}

func TestDetectUnknown(t *testing.T) {
	r := Builtin()
	if g := r.Detect("notes.txt"); g != nil {
		t.Fatalf("expected nil for unknown extension, got %q", g.Name)
	}
}

func TestDetectShebang(t *testing.T) {
	r := Builtin()
	g := r.DetectShebang("#!/usr/bin/env python3")
	if g == nil {
		t.Fatal("expected python for env shebang, got nil")
	}
	if g.Name != "python" {
		t.Fatalf("expected %q, got %q", "python", g.Name)
	}

	if g := r.DetectShebang("#!/bin/sh"); g != nil {
		t.Fatalf("expected nil for unregistered shebang, got %q", g.Name)
	}
}

func TestDetectContent(t *testing.T) {
	r := Builtin()

	// Extension wins over content.
	g := r.DetectContent("tool.py", []byte("#!/usr/bin/env node\n"))
	if g == nil || g.Name != "python" {
		t.Fatalf("extension should win, got %v", g)
	}

	// No extension match falls through to the shebang.
	g = r.DetectContent("tool", []byte("#!/usr/bin/env python\nprint('hi')\n"))
	if g == nil || g.Name != "python" {
		t.Fatalf("expected python via shebang, got %v", g)
	}

	if g := r.DetectContent("tool", []byte("")); g != nil {
		t.Fatalf("expected nil for empty content, got %q", g.Name)
	}
}

func TestAllLanguagesHaveRules(t *testing.T) {
	for _, g := range Builtin().All() {
		if g.Language == nil {
			t.Errorf("%s: missing language loader", g.Name)
		}
		if len(g.Rules.Containers) == 0 {
			t.Errorf("%s: no container rules", g.Name)
		}
		if len(g.Extensions) == 0 {
			t.Errorf("%s: no extensions", g.Name)
		}
	}
}

func TestNodeKindString(t *testing.T) {
	if got := KindFunction.String(); got != "function" {
		t.Errorf("KindFunction.String() = %q", got)
	}
	if got := NodeKind(999).String(); got != "other" {
		t.Errorf("unknown kind should stringify as other, got %q", got)
	}
}
