package provider

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/pders01/spotlight/internal/debuglog"
)

// IndexChangedMsg is sent when the watched index file was written.
type IndexChangedMsg struct {
	Path string
}

// WatchErrorMsg reports a watcher failure; watching continues.
type WatchErrorMsg struct {
	Err error
}

// Watcher follows one index file. The parent directory is watched so
// editors that replace the file are noticed too.
type Watcher struct {
	fs   *fsnotify.Watcher
	path string
}

func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	debuglog.Infof("watching index file %s", abs)
	return &Watcher{fs: fw, path: abs}, nil
}

// Next waits for the next relevant event. Re-issue it after every
// message to keep watching.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != w.path {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					debuglog.Debugf("index file changed: %s", ev)
					return IndexChangedMsg{Path: w.path}
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				return WatchErrorMsg{Err: err}
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
