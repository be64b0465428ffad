package gitcmd

import "context"

// ListObjects enumerates every reachable object id with its type and sizes,
// one "type hash size sizeOnDisk" line per object. Lines may be wrapped in
// apostrophes by the batch-check quoting; ingestion strips them.
func ListObjects(ctx context.Context, r Runner, repoPath string) (string, error) {
	return r.Pipe(ctx, repoPath,
		"git", []string{"rev-list", "--objects", "--all", "--no-object-names"},
		"git", []string{"cat-file", "--batch-check='%(objecttype) %(objectname) %(objectsize) %(objectsize:disk)'"},
	)
}

// CommitDeps lists the objects introduced strictly between a commit's first
// parent and the commit itself, with their paths. The first output line is
// the commit's own id and must be discarded by the caller.
func CommitDeps(ctx context.Context, r Runner, repoPath string, hash string) (string, error) {
	return r.Run(ctx, repoPath, "git", "rev-list", "--objects", hash+"~1.."+hash)
}

// TagRefs lists every tag reference with dereferenced targets, one
// "hash label" pair per line. An annotated tag's line is followed by its
// target commit's line carrying a ^{} suffix.
func TagRefs(ctx context.Context, r Runner, repoPath string) (string, error) {
	return r.Run(ctx, repoPath, "git", "show-ref", "--tags", "-d")
}
