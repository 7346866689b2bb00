package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay groups the burst of events an editor emits on save into a
// single re-run.
const debounceDelay = 500 * time.Millisecond

// watchFiles runs run once, then again whenever one of the files changes,
// until ctx is cancelled. The parent directories are watched rather than the
// files themselves because editors replace files on save, which drops a
// watch registered on the old inode.
func watchFiles(ctx context.Context, files []string, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	watched := make(map[string]bool)
	names := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		names[abs] = true
		dir := filepath.Dir(abs)
		if watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
	}

	runAndReport := func() {
		if err := run(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	runAndReport()
	fmt.Println("watching for changes, ^C to stop")

	debounce := time.NewTimer(debounceDelay)
	if !debounce.Stop() {
		<-debounce.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !names[abs] {
				continue
			}
			debounce.Reset(debounceDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, "watch error:", err)
		case <-debounce.C:
			runAndReport()
		}
	}
}
