package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassifyFile(t *testing.T) {
	cases := map[string]FileKind{
		"main.cpp":  FileKindSource,
		"widget.h":  FileKindHeader,
		"widget.hpp": FileKindHeader,
		"readme":    FileKindSource,
	}
	for name, want := range cases {
		if got := ClassifyFile(name); got != want {
			t.Errorf("ClassifyFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLoaderResolveSearchPath(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "inc")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(sub, "foo.h")
	if err := os.WriteFile(target, []byte("// foo"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader([]string{sub}, filepath.Join(dir, "out"))
	resolved, err := l.Resolve("foo.h")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved != target {
		t.Fatalf("Resolve() = %q, want %q", resolved, target)
	}

	if _, err := l.Resolve("missing.h"); err == nil {
		t.Fatal("expected error for missing include")
	}
}

func TestLoaderOutputPathCreatesDirs(t *testing.T) {
	dir := t.TempDir()
	l := NewLoader(nil, filepath.Join(dir, "out"))
	out, err := l.OutputPath(filepath.Join("pkg", "main.cpp"))
	if err != nil {
		t.Fatalf("OutputPath failed: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(out)); err != nil {
		t.Fatalf("expected output directory to exist: %v", err)
	}
}

func TestLoaderNeedsPreambleOncePerFile(t *testing.T) {
	l := NewLoader(nil, t.TempDir())
	if !l.NeedsPreamble("out.cpp") {
		t.Fatal("first call should need preamble")
	}
	if l.NeedsPreamble("out.cpp") {
		t.Fatal("second call should not need preamble")
	}
}
