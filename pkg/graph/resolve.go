package graph

import (
	"context"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/heft/pkg/gitcmd"
	"github.com/odvcencio/heft/pkg/object"
)

// ResolveOptions configure dependency resolution.
type ResolveOptions struct {
	// Workers bounds the git worker pool. Zero or negative selects the
	// default of half the host's CPUs, minimum one.
	Workers int
	// CachePath, when set, is consulted before running git: an existing
	// file is loaded instead, and a freshly built map is persisted there.
	// A path ending in .zst is zstd-compressed.
	CachePath string
}

// ResolveDeps produces the commit-hash to raw dependency text map covering
// every commit in the container. With a cache file present it loads that and
// issues no git calls; otherwise it runs one range query per commit across a
// bounded worker pool. A single commit's query failure degrades that commit
// to no dependencies and never aborts the others; cache I/O errors are fatal.
func ResolveDeps(ctx context.Context, r gitcmd.Runner, repoPath string, c *object.Container, opts ResolveOptions, obs Observer) (map[object.Hash]string, error) {
	commits := c.Commits.Hashes()

	if opts.CachePath != "" {
		if _, err := os.Stat(opts.CachePath); err == nil {
			return LoadDeps(opts.CachePath, obs)
		}
	}

	deps := buildDeps(ctx, r, repoPath, commits, opts.Workers, obs)

	if opts.CachePath != "" {
		if err := SaveDeps(deps, opts.CachePath); err != nil {
			return nil, err
		}
	}
	return deps, nil
}

func defaultWorkers() int {
	n := runtime.NumCPU() / 2
	if n < 1 {
		n = 1
	}
	return n
}

// buildDeps runs one git range query per commit across a pool of at most
// workers goroutines. A dedicated reporter goroutine owns all progress
// arithmetic: it prints a line only when the integer percentage grows, with
// the running average task duration and the wall-clock time spent since the
// previous percentage increase.
func buildDeps(ctx context.Context, r gitcmd.Runner, repoPath string, commits []object.Hash, workers int, obs Observer) map[object.Hash]string {
	start := time.Now()
	obs.Progressf("Resolving commit deps. Runs a git command for every commit (this could take a while)...")

	if workers <= 0 {
		workers = defaultWorkers()
	}

	total := len(commits)
	deps := make(map[object.Hash]string, total)
	var mu sync.Mutex

	completions := make(chan time.Duration)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		completed := 0
		var totalTime time.Duration
		lastPercent := 0
		lastPercentAt := time.Now()
		for d := range completions {
			completed++
			totalTime += d
			percent := completed * 100 / total
			if percent <= lastPercent {
				continue
			}
			avg := totalTime / time.Duration(completed)
			obs.Progressf("Progress: %d%% (%d of %d), avg %v/task, in %v",
				percent, completed, total,
				avg.Round(time.Millisecond), time.Since(lastPercentAt).Round(time.Millisecond))
			lastPercent = percent
			lastPercentAt = time.Now()
		}
	}()

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, hash := range commits {
		g.Go(func() error {
			unitStart := time.Now()

			out, err := gitcmd.CommitDeps(ctx, r, repoPath, string(hash))
			if err != nil {
				// Root commits have no parent and fail the ~1 range
				// query; they resolve to no dependencies.
				obs.Diagf("commit %s: %v", hash, err)
				out = ""
			}

			// The first line is the commit's own id; everything after
			// it is the dependency text.
			if i := strings.IndexByte(out, '\n'); i >= 0 {
				mu.Lock()
				deps[hash] = out[i+1:]
				mu.Unlock()
			}

			completions <- time.Since(unitStart)
			return nil
		})
	}
	g.Wait()
	close(completions)
	<-reporterDone

	obs.Progressf("Done resolving deps in %v", time.Since(start).Round(time.Millisecond))
	return deps
}
