package graph

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/odvcencio/heft/pkg/object"
)

// lineSet normalizes dependency text to its sorted set of non-empty lines.
// Back-reference and serialization order are unspecified; the set is the
// contract.
func lineSet(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

func TestSaveLoadRoundTrip(t *testing.T) {
	// Round-trip fidelity is guaranteed for lines without the trailing
	// single-space artifact; see TestLoadDepsStripsOneTrailingSpace.
	deps := map[object.Hash]string{
		object.Hash(fakeHash("c1")): fakeHash("t1") + "\n" + fakeHash("b1") + " src/main.go\n",
		object.Hash(fakeHash("c2")): fakeHash("b2") + " docs/readme.md\n",
	}
	path := filepath.Join(t.TempDir(), "deps.txt")
	if err := SaveDeps(deps, path); err != nil {
		t.Fatalf("SaveDeps: %v", err)
	}

	got, err := LoadDeps(path, Discard)
	if err != nil {
		t.Fatalf("LoadDeps: %v", err)
	}
	if len(got) != len(deps) {
		t.Fatalf("entries: got %d, want %d", len(got), len(deps))
	}
	for hash, text := range deps {
		want := lineSet(text)
		have := lineSet(got[hash])
		if strings.Join(want, "|") != strings.Join(have, "|") {
			t.Errorf("deps[%s]: got lines %v, want %v", hash, have, want)
		}
	}
}

func TestSaveLoadRoundTripZstd(t *testing.T) {
	deps := map[object.Hash]string{
		object.Hash(fakeHash("c1")): fakeHash("b1") + " a/b/c.go\n",
	}
	path := filepath.Join(t.TempDir(), "deps.txt.zst")
	if err := SaveDeps(deps, path); err != nil {
		t.Fatalf("SaveDeps: %v", err)
	}

	// The file must actually be compressed, not plain text.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(raw), "a/b/c.go") {
		t.Error("cache file should be zstd-compressed")
	}

	got, err := LoadDeps(path, Discard)
	if err != nil {
		t.Fatalf("LoadDeps: %v", err)
	}
	want := fakeHash("b1") + " a/b/c.go\n"
	if got[object.Hash(fakeHash("c1"))] != want {
		t.Errorf("got %q, want %q", got[object.Hash(fakeHash("c1"))], want)
	}
}

func TestLoadDepsFileLayout(t *testing.T) {
	// Hand-written cache exercising the exact framing: leading delimiter,
	// hash line, dep lines, closing delimiter.
	h1 := fakeHash("c1")
	h2 := fakeHash("c2")
	content := ";\n" + h1 + "\ndep one\ndep two\n;\n" + h2 + "\nonly\n;\n"
	path := filepath.Join(t.TempDir(), "deps.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadDeps(path, Discard)
	if err != nil {
		t.Fatalf("LoadDeps: %v", err)
	}
	if got[object.Hash(h1)] != "dep one\ndep two\n" {
		t.Errorf("deps[%s]: got %q", h1, got[object.Hash(h1)])
	}
	if got[object.Hash(h2)] != "only\n" {
		t.Errorf("deps[%s]: got %q", h2, got[object.Hash(h2)])
	}
}

func TestLoadDepsStripsOneTrailingSpace(t *testing.T) {
	h := fakeHash("c1")
	content := ";\n" + h + "\nroot-tree-id \ntwo-spaces  \n;\n"
	path := filepath.Join(t.TempDir(), "deps.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadDeps(path, Discard)
	if err != nil {
		t.Fatalf("LoadDeps: %v", err)
	}
	want := "root-tree-id\ntwo-spaces \n"
	if got[object.Hash(h)] != want {
		t.Errorf("got %q, want %q (exactly one trailing space stripped)", got[object.Hash(h)], want)
	}
}

func TestLoadDepsMissingFile(t *testing.T) {
	_, err := LoadDeps(filepath.Join(t.TempDir(), "nope.txt"), Discard)
	if err == nil {
		t.Fatal("LoadDeps: expected error for missing file")
	}
}

func TestLoadDepsCleanEOF(t *testing.T) {
	// No trailing newline after the final delimiter; loading must still
	// finish cleanly.
	h := fakeHash("c1")
	content := ";\n" + h + "\ndep\n;"
	path := filepath.Join(t.TempDir(), "deps.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := LoadDeps(path, Discard)
	if err != nil {
		t.Fatalf("LoadDeps: %v", err)
	}
	if got[object.Hash(h)] != "dep\n" {
		t.Errorf("got %q, want %q", got[object.Hash(h)], "dep\n")
	}
}

func TestSaveDepsEnsuresTrailingNewline(t *testing.T) {
	// In-memory text without a final newline still frames correctly.
	h := fakeHash("c1")
	deps := map[object.Hash]string{object.Hash(h): "no newline at end"}
	path := filepath.Join(t.TempDir(), "deps.txt")
	if err := SaveDeps(deps, path); err != nil {
		t.Fatalf("SaveDeps: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := ";\n" + h + "\nno newline at end\n;\n"
	if string(raw) != want {
		t.Errorf("file: got %q, want %q", raw, want)
	}
}
