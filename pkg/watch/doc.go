// Package watch re-runs work when script files change on disk.
//
// A Watcher tracks a set of files through fsnotify events on their parent
// directories, and a Debouncer collapses the burst of events an editor
// produces on save into a single callback.
package watch
