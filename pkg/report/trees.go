package report

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/odvcencio/heft/pkg/object"
)

// Trees prints total tree count and size, the largest individual tree, and
// the path holding the greatest number of distinct tree versions along with
// the total on-disk size of all versions at that path.
func Trees(c *object.Container, w io.Writer) {
	fmt.Fprintln(w, "Building tree report...")
	start := time.Now()

	var total uint64
	var largestSize uint32
	largestIndex := 0
	byPath := make(map[string][]int)

	for i := 0; i < c.Trees.Count(); i++ {
		lt := c.Trees.GetByIndex(i)
		lt.RLock()
		total += uint64(lt.V.SizeOnDisk)
		if lt.V.SizeOnDisk > largestSize {
			largestSize = lt.V.SizeOnDisk
			largestIndex = lt.V.Index
		}
		byPath[lt.V.Path] = append(byPath[lt.V.Path], lt.V.Index)
		lt.RUnlock()
	}

	mostPath := ""
	mostCount := 0
	for path, indices := range byPath {
		if len(indices) > mostCount {
			mostCount = len(indices)
			mostPath = path
		}
	}
	var mostPathSize uint64
	for _, i := range byPath[mostPath] {
		lt := c.Trees.GetByIndex(i)
		lt.RLock()
		mostPathSize += uint64(lt.V.SizeOnDisk)
		lt.RUnlock()
	}

	largestHash, _ := c.Trees.HashForIndex(largestIndex)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tree Report")
	fmt.Fprintln(w, "-------------------------------------------------------")
	fmt.Fprintf(w, "Total Trees: %d\n", c.Trees.Count())
	fmt.Fprintf(w, "Total Trees Size: %s\n", humanize.IBytes(total))
	fmt.Fprintf(w, "Largest Tree Object Size: %s\n", humanize.IBytes(uint64(largestSize)))
	fmt.Fprintf(w, "Largest Tree Object Id: %s\n", largestHash)
	fmt.Fprintf(w, "Most Trees at Path: %s\n", mostPath)
	fmt.Fprintf(w, "Count Most Trees at Path: %d\n", mostCount)
	fmt.Fprintf(w, "Most Trees at Path Total Size: %s\n", humanize.IBytes(mostPathSize))
	fmt.Fprintf(w, "Tree report created in %v\n", time.Since(start).Round(time.Millisecond))
}
