package cli

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// fileChangedMsg reports a write to the watched file.
type fileChangedMsg struct{ path string }

// watchErrMsg reports a watcher failure. Watching continues.
type watchErrMsg struct{ err error }

// fileWatcher watches a single file through its parent directory, so editors
// that replace the file on save are still seen.
type fileWatcher struct {
	w      *fsnotify.Watcher
	target string
}

func watchFile(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	return &fileWatcher{w: w, target: abs}, nil
}

// next blocks until the file is written or created, or the watcher fails.
// It returns nil once the watcher is closed.
func (fw *fileWatcher) next() tea.Msg {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != fw.target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				return fileChangedMsg{path: ev.Name}
			}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

func (fw *fileWatcher) Close() error {
	return fw.w.Close()
}
