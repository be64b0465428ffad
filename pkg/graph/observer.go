// Package graph builds the object dependency graph of a git repository:
// ingesting the flat object inventory, resolving each commit's introduced
// objects through a bounded worker pool, linking the resulting edges, and
// attaching tag references.
package graph

import (
	"fmt"
	"io"
)

// Observer receives progress and diagnostic lines from graph construction.
// Implementations must be safe for concurrent use; the resolver reports
// progress and diagnostics from multiple goroutines.
type Observer interface {
	Progressf(format string, args ...any)
	Diagf(format string, args ...any)
}

// WriterObserver writes progress and diagnostic lines to a writer, one line
// per call. Writes to a terminal or byte buffer are serialized by the
// underlying writer.
type WriterObserver struct {
	W io.Writer
}

func (o WriterObserver) Progressf(format string, args ...any) {
	fmt.Fprintf(o.W, format+"\n", args...)
}

func (o WriterObserver) Diagf(format string, args ...any) {
	fmt.Fprintf(o.W, format+"\n", args...)
}

// Discard drops all observer output.
var Discard Observer = discard{}

type discard struct{}

func (discard) Progressf(string, ...any) {}
func (discard) Diagf(string, ...any)     {}
