package graph

import (
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/heft/pkg/object"
)

// LinkDeps consumes the per-commit dependency listings and finishes the
// graph: commit records gain tree/blob dependency indices, tree and blob
// records gain their path and a back-reference to the commit. Entries are
// independent and processed in parallel; all mutation happens under the
// per-record locks, commit record first, then at most one object record at
// a time.
func LinkDeps(deps map[object.Hash]string, c *object.Container, obs Observer) {
	obs.Progressf("Processing commit deps...")
	start := time.Now()

	g := new(errgroup.Group)
	g.SetLimit(runtime.NumCPU())
	for hash, text := range deps {
		g.Go(func() error {
			linkCommit(hash, text, c)
			return nil
		})
	}
	g.Wait()

	obs.Progressf("Processed all commit deps in %v", time.Since(start).Round(time.Millisecond))
}

// linkCommit applies one commit's dependency text. Each line carries a
// 40-character object id, optionally followed by a single space and a path.
// Ids found in neither the tree nor the blob store are commits reachable
// from the range query; commit-to-commit edges are not modeled.
//
// Two commits may reference the same tree or blob concurrently: the
// back-reference appends commute, and both writers derive the same path
// from the same listing, so last-writer-wins on Path is safe.
func linkCommit(hash object.Hash, text string, c *object.Container) {
	lc, ok := c.Commits.Get(hash)
	if !ok {
		return
	}
	lc.Lock()
	defer lc.Unlock()
	commit := &lc.V

	for _, line := range strings.Split(text, "\n") {
		if len(line) < 40 {
			// Trailing blank from the final newline.
			continue
		}
		id := object.Hash(line[:40])
		path := ""
		if len(line) > 41 {
			path = line[41:]
		}

		if treeIndex, ok := c.Trees.Index(id); ok {
			lt := c.Trees.GetByIndex(treeIndex)
			lt.Lock()
			lt.V.Path = path
			lt.V.Commits = append(lt.V.Commits, commit.Index)
			lt.Unlock()
			commit.TreeDeps = append(commit.TreeDeps, treeIndex)
			continue
		}
		if blobIndex, ok := c.Blobs.Index(id); ok {
			lb := c.Blobs.GetByIndex(blobIndex)
			lb.Lock()
			lb.V.Path = path
			lb.V.Commits = append(lb.V.Commits, commit.Index)
			lb.Unlock()
			commit.BlobDeps = append(commit.BlobDeps, blobIndex)
		}
	}
}
