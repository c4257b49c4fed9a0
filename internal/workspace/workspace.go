package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/19wintersp/Facsimile/internal/lexer"
	"github.com/19wintersp/Facsimile/internal/parser"
	"github.com/19wintersp/Facsimile/internal/parser/ast"
)

type Workspace struct {
	rootPath string

	parsedFiles map[string]*ast.File
}

func New(rootPath string) *Workspace {
	return &Workspace{
		rootPath:    rootPath,
		parsedFiles: make(map[string]*ast.File),
	}
}

func (w *Workspace) Load(relPath string) (*ast.File, error) {
	fullPath := filepath.Join(w.rootPath, relPath)

	if f, ok := w.parsedFiles[fullPath]; ok {
		return f, nil
	}

	bytes, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	f, err := w.build(relPath, bytes)
	if err != nil {
		return nil, err
	}

	w.parsedFiles[fullPath] = f
	return f, nil
}

// LoadWithContents lexes and parses an in-memory document, bypassing and
// refreshing the cache entry for its path.
func (w *Workspace) LoadWithContents(relPath string, contents []byte) (*ast.File, error) {
	f, err := w.build(relPath, contents)
	if err != nil {
		return nil, err
	}

	w.parsedFiles[filepath.Join(w.rootPath, relPath)] = f
	return f, nil
}

// Invalidate drops the cache entry for a path, forcing the next Load to
// re-read it from disk.
func (w *Workspace) Invalidate(relPath string) {
	delete(w.parsedFiles, filepath.Join(w.rootPath, relPath))
}

func (w *Workspace) Files() []string {
	files := make([]string, 0, len(w.parsedFiles))
	for path := range w.parsedFiles {
		files = append(files, path)
	}

	return files
}

func (w *Workspace) build(relPath string, contents []byte) (*ast.File, error) {
	l := lexer.New(contents, relPath)
	tks, err := l.Collect()
	if err != nil {
		return nil, fmt.Errorf("lex file: %w", err)
	}

	file, err := parser.Parse(tks)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	return file, nil
}
