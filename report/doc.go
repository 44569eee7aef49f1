// Package report renders validation and probe results for the console.
//
// Rendering is deliberately separate from the checks that produce the
// results: the core returns data, and this package turns it into the
// diagnostic stream a maintainer reads to fix the corpus. Output goes to an
// injected io.Writer so tests can capture it.
package report
