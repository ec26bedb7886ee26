package config

import (
	"github.com/fsnotify/fsnotify"
)

// Logger is the narrow logging surface Watch needs.
type Logger interface {
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
}

// Watch reloads path into store whenever the file changes on disk. A
// config that fails to parse is logged and discarded; the last good
// configuration stays active, per SPEC_FULL.md §4.7. The returned watcher
// must be closed by the caller on shutdown.
func Watch(path string, store *Store, log Logger) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					if log != nil {
						log.Warn("config reload failed, keeping previous configuration", "path", path, "error", err.Error())
					}
					continue
				}
				store.Swap(cfg)
				if log != nil {
					log.Info("configuration reloaded", "path", path)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if log != nil {
					log.Warn("config watcher error", "error", err.Error())
				}
			}
		}
	}()
	return watcher, nil
}
