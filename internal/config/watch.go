package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// OnSettingsChange calls fn every time the settings file changes on disk.
func OnSettingsChange(fn func()) {
	viper.OnConfigChange(func(in fsnotify.Event) {
		logrus.Infof("Settings file changed: %s", in.Name)
		fn()
	})
	viper.WatchConfig()
}

// WatchSchema calls fn whenever the file at path is written or created. The
// directory is watched rather than the file so that editors replacing the
// file are noticed too. Close the returned watcher to stop.
func WatchSchema(path string, fn func()) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "error creating schema watcher")
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "error watching %s", filepath.Dir(path))
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					logrus.Infof("Schema file changed: %s", event.Name)
					fn()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.Error("There was an error while watching the schema: ", err)
			}
		}
	}()

	return watcher, nil
}
