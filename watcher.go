package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/19wintersp/Facsimile/internal/workspace"
)

type Watcher struct {
	watchingDirs, watchingFiles map[string]struct{}
	workspaces                  map[string]*workspace.Workspace

	watcher *fsnotify.Watcher
}

func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]struct{}),
		workspaces:    make(map[string]*workspace.Workspace),
		watcher:       watcher,
	}
	go w.eventLoop()

	return w, nil
}

func (w *Watcher) WatchFile(path string) error {
	fullPath, _ := filepath.Abs(path)
	w.watchingFiles[fullPath] = struct{}{}

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)

			if _, ok := w.watchingFiles[fname]; !ok {
				continue
			}

			w.fileModified(fname)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Println("error:", err)
		}
	}
}

func (w *Watcher) fileModified(fullPath string) {
	name := filepath.Base(fullPath)

	log.Printf("file %q modified, rechecking...", name)

	err := w.recheck(fullPath)
	if err != nil {
		log.Printf("%s", err)
		return
	}

	log.Printf("file %q OK", name)
}

func (w *Watcher) recheck(fullPath string) error {
	name := filepath.Base(fullPath)

	// The workspace persists across events; drop the stale parse so the
	// check sees the new contents.
	ws := w.workspaceFor(filepath.Dir(fullPath))
	ws.Invalidate(name)

	return checkFile(ws, name)
}

func (w *Watcher) workspaceFor(dir string) *workspace.Workspace {
	ws, ok := w.workspaces[dir]
	if !ok {
		ws = workspace.New(dir)
		w.workspaces[dir] = ws
	}

	return ws
}
