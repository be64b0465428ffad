package report

import (
	"io"

	"github.com/odvcencio/heft/pkg/object"
)

// All prints the commit, tree, and blob reports in order.
func All(c *object.Container, w io.Writer, top int) {
	Commits(c, w)
	Trees(c, w)
	Blobs(c, w, top)
}
