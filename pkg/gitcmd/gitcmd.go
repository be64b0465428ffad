// Package gitcmd runs external commands and shapes the git queries the
// analyzer depends on. Command failures carry the captured stderr text.
package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands in a working directory and captures
// their standard output. Pipe connects the first command's stdout to the
// second command's stdin and captures the second command's output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
	Pipe(ctx context.Context, dir, name1 string, args1 []string, name2 string, args2 []string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

// Run executes a command and returns its trimmed stdout. On failure the
// returned error carries the captured stderr, falling back to the exec
// error when stderr is empty.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Pipe executes name1 and name2 with the first command's stdout connected
// to the second command's stdin, returning the second command's stdout.
func (ExecRunner) Pipe(ctx context.Context, dir, name1 string, args1 []string, name2 string, args2 []string) (string, error) {
	first := exec.CommandContext(ctx, name1, args1...)
	first.Dir = dir
	second := exec.CommandContext(ctx, name2, args2...)
	second.Dir = dir

	pipe, err := first.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%s %s: pipe: %w", name1, strings.Join(args1, " "), err)
	}
	second.Stdin = pipe

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	second.Stdout = &stdout
	second.Stderr = &stderr

	if err := first.Start(); err != nil {
		return "", fmt.Errorf("%s %s: %w", name1, strings.Join(args1, " "), err)
	}
	if err := second.Start(); err != nil {
		first.Wait()
		return "", fmt.Errorf("%s %s: %w", name2, strings.Join(args2, " "), err)
	}
	secondErr := second.Wait()
	firstErr := first.Wait()
	if secondErr != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = secondErr.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name2, strings.Join(args2, " "), msg)
	}
	if firstErr != nil {
		return "", fmt.Errorf("%s %s: %w", name1, strings.Join(args1, " "), firstErr)
	}
	return stdout.String(), nil
}
