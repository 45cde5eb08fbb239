package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watcher reports writes to a fixed set of files. The parent directories
// are watched rather than the files themselves so that editors which
// save by rename-and-replace are still seen.
type watcher struct {
	watcher *fsnotify.Watcher
	paths   map[string]bool
}

func newWatcher(files []string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{fsw, map[string]bool{}}
	dirs := map[string]bool{}
	for _, file := range files {
		w.paths[filepath.Clean(file)] = true
		dir := filepath.Dir(file)
		if !dirs[dir] {
			if err := fsw.Add(dir); err != nil {
				fsw.Close()
				return nil, err
			}
			dirs[dir] = true
		}
	}
	return w, nil
}

func (w *watcher) Close() error {
	return w.watcher.Close()
}

// Run delivers changed file names until the watcher is closed. Repeated
// events within 100ms collapse into one, and delivery waits that long so
// the write is finished before re-minifying.
func (w *watcher) Run() chan string {
	files := make(chan string, 10)
	go func() {
		changeTimes := map[string]time.Time{}
		for w.watcher.Events != nil && w.watcher.Errors != nil {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					w.watcher.Events = nil
					break
				}
				name := filepath.Clean(event.Name)
				if !w.paths[name] {
					break
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					break
				}
				if info, err := os.Lstat(name); err != nil || !info.Mode().IsRegular() {
					break
				}
				if t, ok := changeTimes[name]; !ok || 100*time.Millisecond < time.Since(t) {
					time.Sleep(100 * time.Millisecond)
					files <- name
					changeTimes[name] = time.Now()
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					w.watcher.Errors = nil
					break
				}
				printError(err)
			}
		}
		close(files)
	}()
	return files
}
