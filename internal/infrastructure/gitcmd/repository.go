// Package gitcmd talks to the git CLI for tag operations.
package gitcmd

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Repository runs git tag operations in Dir (the current directory when
// empty). Exec is swappable so tests never spawn a real git process.
type Repository struct {
	Dir  string
	Exec func(ctx context.Context, dir string, args []string) ([]byte, error)
}

// CreateTag creates a local tag at the current checkout state.
// A non-empty message produces an annotated tag.
func (r Repository) CreateTag(ctx context.Context, name, message string) error {
	args := []string{"tag", name}
	if message != "" {
		args = []string{"tag", "-a", name, "-m", message}
	}
	if out, err := r.exec(ctx, args); err != nil {
		return fmt.Errorf("git tag %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// PushTag pushes a tag to the named remote.
func (r Repository) PushTag(ctx context.Context, remote, name string) error {
	if out, err := r.exec(ctx, []string{"push", remote, name}); err != nil {
		return fmt.Errorf("git push %s %s: %w: %s", remote, name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// DeleteTag removes a local tag. Used to roll back a created tag when
// the push fails and rollback is enabled.
func (r Repository) DeleteTag(ctx context.Context, name string) error {
	if out, err := r.exec(ctx, []string{"tag", "-d", name}); err != nil {
		return fmt.Errorf("git tag -d %s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// TagExists reports whether a local tag with the given name exists.
func (r Repository) TagExists(ctx context.Context, name string) (bool, error) {
	out, err := r.exec(ctx, []string{"tag", "--list", name})
	if err != nil {
		return false, fmt.Errorf("git tag --list: %w", err)
	}
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// Head returns the commit SHA of the current checkout.
func (r Repository) Head(ctx context.Context) (string, error) {
	out, err := r.exec(ctx, []string{"rev-parse", "HEAD"})
	if err != nil {
		return "", fmt.Errorf("git rev-parse HEAD: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// LatestTag returns the most recent tag reachable from HEAD, or an
// empty string when the repository has no tags.
func (r Repository) LatestTag(ctx context.Context) (string, error) {
	out, err := r.exec(ctx, []string{"describe", "--tags", "--abbrev=0"})
	if err != nil {
		// No tags yet is a normal state, not an error.
		if strings.Contains(string(out), "cannot describe") || strings.Contains(string(out), "No names found") {
			return "", nil
		}
		return "", fmt.Errorf("git describe: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r Repository) exec(ctx context.Context, args []string) ([]byte, error) {
	execFn := r.Exec
	if execFn == nil {
		execFn = runGit
	}
	return execFn(ctx, r.Dir, args)
}

func runGit(ctx context.Context, dir string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}
