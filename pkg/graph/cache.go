package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/odvcencio/heft/pkg/object"
)

// The dependency cache is a text file framed by delimiter lines: a line
// consisting of exactly ";" precedes each commit block. A block is the
// commit hash on its own line followed by that commit's dependency lines
// and the next delimiter. A path ending in .zst wraps the same byte stream
// in zstd.

const cacheDelimiter = ";"

// SaveDeps persists the dependency map to path.
func SaveDeps(deps map[object.Hash]string, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save deps: %w", err)
	}

	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(path, ".zst") {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return fmt.Errorf("save deps: zstd: %w", err)
		}
		w = enc
	}

	bw := bufio.NewWriter(w)
	writeErr := func() error {
		if _, err := bw.WriteString(cacheDelimiter + "\n"); err != nil {
			return err
		}
		for hash, text := range deps {
			if _, err := bw.WriteString(string(hash) + "\n"); err != nil {
				return err
			}
			if _, err := bw.WriteString(text); err != nil {
				return err
			}
			if !strings.HasSuffix(text, "\n") {
				if err := bw.WriteByte('\n'); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(cacheDelimiter + "\n"); err != nil {
				return err
			}
		}
		return bw.Flush()
	}()
	if writeErr != nil {
		if enc != nil {
			enc.Close()
		}
		f.Close()
		return fmt.Errorf("save deps: %w", writeErr)
	}

	if enc != nil {
		if err := enc.Close(); err != nil {
			f.Close()
			return fmt.Errorf("save deps: zstd close: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save deps: close: %w", err)
	}
	return nil
}

// LoadDeps reads a dependency map persisted by SaveDeps. Reading stops
// cleanly at end of file; any other I/O error is fatal. Any non-delimiter
// line ending in exactly one trailing space has that character stripped
// before its newline is re-appended, so a path that legitimately ends in a
// single space loads back without it.
func LoadDeps(path string, obs Observer) (map[object.Hash]string, error) {
	obs.Progressf("Loading commit deps from %s", path)
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load deps: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("load deps: zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	deps := make(map[object.Hash]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<22)

	haveHash := false
	var hash object.Hash
	var lines strings.Builder

	// A delimiter announces that the next line is a hash; after the hash,
	// every line is a dependency until the closing delimiter.
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == cacheDelimiter:
			if lines.Len() > 0 {
				deps[hash] = lines.String()
				lines.Reset()
			}
			haveHash = true
		case haveHash:
			hash = object.Hash(line)
			haveHash = false
		default:
			if strings.HasSuffix(line, " ") {
				line = line[:len(line)-1]
			}
			lines.WriteString(line)
			lines.WriteByte('\n')
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("load deps: %w", err)
	}

	obs.Progressf("Done loading deps in %v", time.Since(start).Round(time.Millisecond))
	return deps, nil
}
