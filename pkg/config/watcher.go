package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"qam-observer/pkg/logger"
)

// Watch reloads the config whenever the file at path is rewritten and
// hands the fresh config to onReload. The parent directory is watched
// rather than the file itself so editors that replace the file are
// still seen. Returns a stop function.
func Watch(path string, log *logger.Logger, onReload func(*Config)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				log.Info("Config file changed, reloading", "path", path)

				fresh, err := loadConfigFromPath(path, log)
				if err != nil {
					log.Error("Reload failed, keeping previous config", err, "path", path)
					continue
				}
				onReload(fresh)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Error("Config watcher error", err)
			}
		}
	}()

	log.Debug("Watching config for changes", "path", path)

	return func() { watcher.Close() }, nil
}
