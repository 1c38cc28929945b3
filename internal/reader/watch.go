package reader

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

type fileChangedMsg struct {
	path string
	stop chan struct{}
}

// watchCmd blocks until one of paths is written, created or renamed, or
// until stop is closed.
func watchCmd(paths []string, stop chan struct{}) tea.Cmd {
	return func() tea.Msg {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil
		}
		defer watcher.Close()

		wanted := make(map[string]bool, len(paths))
		dirs := make(map[string]bool)
		for _, p := range paths {
			clean := filepath.Clean(p)
			wanted[clean] = true
			dirs[filepath.Dir(clean)] = true
		}
		for dir := range dirs {
			_ = watcher.Add(dir)
		}

		for {
			select {
			case <-stop:
				return nil
			case evt, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					if shouldReloadPath(wanted, evt.Name) {
						return fileChangedMsg{path: filepath.Clean(evt.Name), stop: stop}
					}
				}
			case <-watcher.Errors:
			}
		}
	}
}

func shouldReloadPath(wanted map[string]bool, name string) bool {
	return wanted[filepath.Clean(name)]
}
