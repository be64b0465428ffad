package graph

import (
	"sort"
	"testing"

	"github.com/odvcencio/heft/pkg/object"
)

func linkFixture(t *testing.T) *object.Container {
	t.Helper()
	c := object.NewContainer()
	listing := "commit " + fakeHash("c1") + " 120 80\n" +
		"commit " + fakeHash("c2") + " 110 70\n" +
		"tree " + fakeHash("t1") + " 30 20\n" +
		"blob " + fakeHash("b1") + " 50 40\n"
	if err := Ingest(listing, c, Discard); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	return c
}

func TestLinkDepsTreeAndBlobEdges(t *testing.T) {
	c := linkFixture(t)
	deps := map[object.Hash]string{
		object.Hash(fakeHash("c1")): fakeHash("t1") + " \n" + fakeHash("b1") + " src/main.rs\n",
	}
	LinkDeps(deps, c, Discard)

	lc, _ := c.Commits.Get(object.Hash(fakeHash("c1")))
	if len(lc.V.TreeDeps) != 1 || lc.V.TreeDeps[0] != 0 {
		t.Errorf("TreeDeps: got %v, want [0]", lc.V.TreeDeps)
	}
	if len(lc.V.BlobDeps) != 1 || lc.V.BlobDeps[0] != 0 {
		t.Errorf("BlobDeps: got %v, want [0]", lc.V.BlobDeps)
	}

	lt := c.Trees.GetByIndex(0)
	if lt.V.Path != "" {
		t.Errorf("root tree path: got %q, want empty", lt.V.Path)
	}
	if len(lt.V.Commits) != 1 || lt.V.Commits[0] != 0 {
		t.Errorf("tree back-references: got %v, want [0]", lt.V.Commits)
	}

	lb := c.Blobs.GetByIndex(0)
	if lb.V.Path != "src/main.rs" {
		t.Errorf("blob path: got %q, want %q", lb.V.Path, "src/main.rs")
	}
	if len(lb.V.Commits) != 1 || lb.V.Commits[0] != 0 {
		t.Errorf("blob back-references: got %v, want [0]", lb.V.Commits)
	}
}

func TestLinkDepsSkipsShortAndUnknownLines(t *testing.T) {
	c := linkFixture(t)
	deps := map[object.Hash]string{
		// A blank trailing line, a commit id (modeled nowhere), and a
		// valid blob line.
		object.Hash(fakeHash("c1")): "\n" + fakeHash("c2") + "\n" + fakeHash("b1") + " x.go\n",
	}
	LinkDeps(deps, c, Discard)

	lc, _ := c.Commits.Get(object.Hash(fakeHash("c1")))
	if len(lc.V.TreeDeps) != 0 {
		t.Errorf("TreeDeps: got %v, want none", lc.V.TreeDeps)
	}
	if len(lc.V.BlobDeps) != 1 {
		t.Errorf("BlobDeps: got %v, want one entry", lc.V.BlobDeps)
	}
}

func TestLinkDepsUnknownCommitEntryIgnored(t *testing.T) {
	c := linkFixture(t)
	deps := map[object.Hash]string{
		object.Hash(fakeHash("ghost")): fakeHash("b1") + " x.go\n",
	}
	LinkDeps(deps, c, Discard)

	lb := c.Blobs.GetByIndex(0)
	if len(lb.V.Commits) != 0 {
		t.Errorf("blob back-references: got %v, want none", lb.V.Commits)
	}
}

func TestLinkDepsSharedObjectAcrossCommits(t *testing.T) {
	c := linkFixture(t)
	deps := map[object.Hash]string{
		object.Hash(fakeHash("c1")): fakeHash("b1") + " shared.go\n",
		object.Hash(fakeHash("c2")): fakeHash("b1") + " shared.go\n",
	}
	LinkDeps(deps, c, Discard)

	lb := c.Blobs.GetByIndex(0)
	refs := append([]int(nil), lb.V.Commits...)
	sort.Ints(refs)
	if len(refs) != 2 || refs[0] != 0 || refs[1] != 1 {
		t.Errorf("blob back-references: got %v, want {0,1} in any order", lb.V.Commits)
	}
	if lb.V.Path != "shared.go" {
		t.Errorf("blob path: got %q, want %q", lb.V.Path, "shared.go")
	}
}

// Edge sets and path values must not depend on scheduling. Run the same map
// through repeated fresh links and compare against a single-entry baseline.
func TestLinkDepsDeterministicAcrossRuns(t *testing.T) {
	deps := map[object.Hash]string{
		object.Hash(fakeHash("c1")): fakeHash("t1") + " \n" + fakeHash("b1") + " a.go\n",
		object.Hash(fakeHash("c2")): fakeHash("t1") + " \n" + fakeHash("b1") + " a.go\n",
	}

	snapshot := func() ([]int, []int, string) {
		c := linkFixture(t)
		LinkDeps(deps, c, Discard)
		lt := c.Trees.GetByIndex(0)
		lb := c.Blobs.GetByIndex(0)
		treeRefs := append([]int(nil), lt.V.Commits...)
		blobRefs := append([]int(nil), lb.V.Commits...)
		sort.Ints(treeRefs)
		sort.Ints(blobRefs)
		return treeRefs, blobRefs, lb.V.Path
	}

	wantTree, wantBlob, wantPath := snapshot()
	for i := 0; i < 10; i++ {
		gotTree, gotBlob, gotPath := snapshot()
		if !equalInts(gotTree, wantTree) || !equalInts(gotBlob, wantBlob) || gotPath != wantPath {
			t.Fatalf("run %d: got (%v, %v, %q), want (%v, %v, %q)",
				i, gotTree, gotBlob, gotPath, wantTree, wantBlob, wantPath)
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
