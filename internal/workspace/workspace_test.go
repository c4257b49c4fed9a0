package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCaches(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "config.fax")
	if err := os.WriteFile(path, []byte(`(window {width 800})`), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := New(dir)

	f1, err := ws.Load("config.fax")
	if err != nil {
		t.Fatalf("failed to load: %s", err)
	}
	if len(f1.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(f1.Nodes))
	}

	// Second load must come from the cache even if the file changed
	if err := os.WriteFile(path, []byte(`(other)`), 0o644); err != nil {
		t.Fatal(err)
	}

	f2, err := ws.Load("config.fax")
	if err != nil {
		t.Fatalf("failed to reload: %s", err)
	}
	if f2 != f1 {
		t.Fatal("expected the cached file")
	}

	ws.Invalidate("config.fax")

	f3, err := ws.Load("config.fax")
	if err != nil {
		t.Fatalf("failed to load after invalidate: %s", err)
	}
	if f3 == f1 {
		t.Fatal("expected a fresh parse after invalidation")
	}
}

func TestLoadWithContents(t *testing.T) {
	ws := New(t.TempDir())

	f, err := ws.LoadWithContents("inline.fax", []byte(`[1 2 3]`))
	if err != nil {
		t.Fatalf("failed to load contents: %s", err)
	}
	if f.Name != "inline.fax" {
		t.Fatalf("expected file name to carry through, got %q", f.Name)
	}

	if len(ws.Files()) != 1 {
		t.Fatalf("expected 1 cached file, got %d", len(ws.Files()))
	}
}

func TestLoadSurfacesSyntaxErrors(t *testing.T) {
	ws := New(t.TempDir())

	_, err := ws.LoadWithContents("bad.fax", []byte(`"unterminated`))
	if err == nil {
		t.Fatal("expected a lex error")
	}

	_, err = ws.LoadWithContents("bad.fax", []byte(`(1 2`))
	if err == nil {
		t.Fatal("expected a parse error")
	}
}