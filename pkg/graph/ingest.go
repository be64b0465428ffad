package graph

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/odvcencio/heft/pkg/gitcmd"
	"github.com/odvcencio/heft/pkg/object"
)

// LoadObjects enumerates every reachable object in the repository and
// ingests the inventory into the container. Enumeration failure is fatal;
// the rest of the pipeline has nothing to work on without it.
func LoadObjects(ctx context.Context, r gitcmd.Runner, repoPath string, c *object.Container, obs Observer) error {
	listing, err := gitcmd.ListObjects(ctx, r, repoPath)
	if err != nil {
		return fmt.Errorf("list objects: %w", err)
	}
	if err := Ingest(listing, c, obs); err != nil {
		return err
	}
	obs.Progressf("Added %d commits.", c.Commits.Count())
	obs.Progressf("Added %d trees.", c.Trees.Count())
	obs.Progressf("Added %d blobs.", c.Blobs.Count())
	obs.Progressf("Added %d tags.", c.Tags.Count())
	return nil
}

// Ingest parses the flat object listing into the container's stores. Each
// meaningful line holds exactly four space-separated fields:
// "kind hash size sizeOnDisk". Apostrophes are an artifact of the
// batch-check quoting and are stripped before splitting; lines that do not
// split into four fields (including a trailing blank) are skipped. An
// unrecognized kind is reported and ignored; a malformed size is an error.
func Ingest(listing string, c *object.Container, obs Observer) error {
	for _, raw := range strings.Split(listing, "\n") {
		line := strings.ReplaceAll(raw, "'", "")
		fields := strings.Split(line, " ")
		if len(fields) != 4 {
			continue
		}

		hash := object.Hash(fields[1])
		size, err := parseSize(fields[2])
		if err != nil {
			return fmt.Errorf("ingest %s: size: %w", hash, err)
		}
		sizeOnDisk, err := parseSize(fields[3])
		if err != nil {
			return fmt.Errorf("ingest %s: size on disk: %w", hash, err)
		}

		switch object.Kind(fields[0]) {
		case object.KindCommit:
			index := c.Commits.Count()
			c.Commits.Add(hash, object.Commit{Index: index, Size: size, SizeOnDisk: sizeOnDisk})
		case object.KindTree:
			index := c.Trees.Count()
			c.Trees.Add(hash, object.Tree{Index: index, Size: size, SizeOnDisk: sizeOnDisk})
		case object.KindBlob:
			index := c.Blobs.Count()
			c.Blobs.Add(hash, object.Blob{Index: index, Size: size, SizeOnDisk: sizeOnDisk})
		case object.KindTag:
			index := c.Tags.Count()
			c.Tags.Add(hash, object.Tag{Index: index, Size: size, SizeOnDisk: sizeOnDisk, CommitIndex: -1})
		default:
			obs.Diagf("unknown object kind %q", fields[0])
		}
	}
	return nil
}

func parseSize(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
