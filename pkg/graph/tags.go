package graph

import (
	"context"
	"strings"
	"time"

	"github.com/odvcencio/heft/pkg/gitcmd"
	"github.com/odvcencio/heft/pkg/object"
)

// ResolveTags lists the repository's tag references and attaches tag names,
// tag-commit links, and lightweight tag labels to the container. A listing
// failure is reported and the graph is left without tag data; it does not
// abort the run.
func ResolveTags(ctx context.Context, r gitcmd.Runner, repoPath string, c *object.Container, obs Observer) {
	obs.Progressf("Processing tags...")
	start := time.Now()

	refs, err := gitcmd.TagRefs(ctx, r, repoPath)
	if err != nil {
		obs.Diagf("unable to get tag refs: %v", err)
		return
	}
	LinkTags(refs, c, obs)

	obs.Progressf("Done processing tags in %v", time.Since(start).Round(time.Millisecond))
}

// LinkTags walks the tag-reference listing, one "hash label" pair per line.
// An annotated tag appears as its own hash/label line followed by the
// dereferenced commit's line whose label carries a ^{} suffix, so the pass
// is inherently sequential: a tag seen on one line waits for its target on
// the next.
func LinkTags(refs string, c *object.Container, obs Observer) {
	var pending *object.Locked[object.Tag]

	for _, line := range strings.Split(refs, "\n") {
		parts := strings.Split(line, " ")
		if len(parts) < 2 {
			continue
		}
		hash := object.Hash(parts[0])
		label := parts[1]

		commitIndex, isCommit := c.Commits.Index(hash)
		if !isCommit {
			// Not a commit: this line names a tag object.
			if lt, ok := c.Tags.Get(hash); ok {
				lt.Lock()
				lt.V.Name = label
				lt.Unlock()
				pending = lt
			} else {
				obs.Diagf("unable to find tag: %s", hash)
			}
			continue
		}

		lc := c.Commits.GetByIndex(commitIndex)
		lc.Lock()
		if pending != nil {
			// The previous line was a tag object awaiting its target.
			pending.Lock()
			if strings.HasSuffix(line, "^{}") {
				lc.V.TagDeps = append(lc.V.TagDeps, pending.V.Index)
				pending.V.CommitIndex = commitIndex
			} else if h, ok := c.Tags.HashForIndex(pending.V.Index); ok {
				obs.Diagf("tag found with no related commit: %s", h)
			} else {
				obs.Diagf("tag found with no related commit, tag hash not found")
			}
			pending.Unlock()
			pending = nil
		} else {
			// No tag object behind this reference: a lightweight tag.
			lc.V.LightweightTags = append(lc.V.LightweightTags, label)
		}
		lc.Unlock()
	}
}
