// Package watch re-runs an action whenever an input file changes.
//
// The file's parent directory is watched rather than the file itself so that
// editors that save by writing a temporary file and renaming it over the
// original keep triggering runs. Bursts of events are coalesced by a
// Debouncer.
package watch
