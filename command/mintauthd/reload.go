// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/mintauth/signer"
)

// reloader - watch the configuration file and apply the settings
// that may change while running
//
// the directory is watched rather than the file so editors that
// replace the file are still seen
type reloader struct {
	log       *logger.L
	watcher   *fsnotify.Watcher
	filePath  string
	variables map[string]string
	signer    *signer.Context
}

func newReloader(fileName string, variables map[string]string, s *signer.Context) (*reloader, error) {
	log := logger.New("reload")

	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		_ = watcher.Close()
		return nil, err
	}

	return &reloader{
		log:       log,
		watcher:   watcher,
		filePath:  filePath,
		variables: variables,
		signer:    s,
	}, nil
}

// Run - background process
func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	log := r.log
	log.Infof("watching: %q", r.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-r.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != r.filePath {
				continue loop
			}
			log.Debugf("file event: %v", event)
			if watcherEventFileChange(event) {
				r.refresh()
			}

		case err, ok := <-r.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)
		}
	}

	_ = r.watcher.Close()
	log.Info("shutdown")
}

// re-read the configuration, a bad file leaves the current values
func (r *reloader) refresh() {
	options, err := getConfiguration(r.filePath, r.variables)
	if nil != err {
		r.log.Errorf("failed to read configuration from: %q error: %s", r.filePath, err)
		return
	}
	s, err := options.settings()
	if nil != err {
		r.log.Errorf("configuration: %q error: %s", r.filePath, err)
		return
	}
	r.signer.SetDefaultPrice(s.defaultPrice)
}

func watcherEventFileChange(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Create == fsnotify.Create
}
