// Package report produces read-only size and structure reports over a
// finished object graph. No writer exists by the time a report runs, so the
// traversals take read locks only for discipline, never for exclusion.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/odvcencio/heft/pkg/object"
)

// Blobs prints total blob count and size and the top largest blobs by
// on-disk size, largest first.
func Blobs(c *object.Container, w io.Writer, top int) {
	fmt.Fprintln(w, "Building blob report...")
	start := time.Now()

	var total uint64
	keeper := newTopN(top)
	for i := 0; i < c.Blobs.Count(); i++ {
		lb := c.Blobs.GetByIndex(i)
		lb.RLock()
		total += uint64(lb.V.SizeOnDisk)
		keeper.Add(lb.V.SizeOnDisk, lb.V.Index)
		lb.RUnlock()
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Blob Report")
	fmt.Fprintln(w, "-------------------------------------------------------")
	fmt.Fprintf(w, "Total Blobs: %d\n", c.Blobs.Count())
	fmt.Fprintf(w, "Total Blobs Size: %s\n", humanize.IBytes(total))
	fmt.Fprintf(w, "Top %d Largest Blobs:\n", top)
	for _, e := range keeper.Descending() {
		hash, _ := c.Blobs.HashForIndex(e.Index)
		fmt.Fprintf(w, "\tBlob Size: %s, Hash: %s\n", humanize.IBytes(uint64(e.Size)), hash)
	}
	fmt.Fprintf(w, "Blob report created in %v\n", time.Since(start).Round(time.Millisecond))
}
