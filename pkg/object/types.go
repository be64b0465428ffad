package object

// Hash is a 40-character hex-encoded SHA-1 object id as printed by git.
type Hash string

// Kind identifies the kind of git object inventoried.
type Kind string

const (
	KindCommit Kind = "commit"
	KindTree   Kind = "tree"
	KindBlob   Kind = "blob"
	KindTag    Kind = "tag"
)

// Commit records a commit object's sizes and the objects it introduced.
// The dependency lists hold indices into the matching kind's store and are
// filled in during graph linking; LightweightTags holds ref labels that
// point straight at this commit with no tag object behind them.
type Commit struct {
	Index           int
	Size            uint32
	SizeOnDisk      uint32
	TreeDeps        []int
	BlobDeps        []int
	TagDeps         []int
	LightweightTags []string
}

// Tree records a tree object. Path is empty for the root tree. Commits
// back-references every commit known to have introduced this tree.
type Tree struct {
	Index      int
	Size       uint32
	SizeOnDisk uint32
	Path       string
	Commits    []int
}

// Blob records a blob object with the path it was introduced under and
// back-references to the commits that introduced it.
type Blob struct {
	Index      int
	Size       uint32
	SizeOnDisk uint32
	Path       string
	Commits    []int
}

// Tag records an annotated tag object. Name holds the full ref label
// (e.g. refs/tags/v1.0), set during tag resolution. CommitIndex is the
// linked target commit, or -1 while unresolved.
type Tag struct {
	Index       int
	Size        uint32
	SizeOnDisk  uint32
	Name        string
	CommitIndex int
}
