package sourcestats

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"readmegen/internal/errors"
)

// PathKind is the result of inspecting a path before dispatch.
type PathKind int

const (
	PathMissing PathKind = iota
	PathFile
	PathDirectory
	// PathSpecial is anything else: pipes, sockets, devices.
	PathSpecial
)

func (k PathKind) String() string {
	switch k {
	case PathFile:
		return "file"
	case PathDirectory:
		return "directory"
	case PathSpecial:
		return "special"
	default:
		return "missing"
	}
}

// KindOf stats path, following symlinks. Only regular files are PathFile.
// A path that does not exist is PathMissing with a nil error; any other
// stat failure is returned.
func KindOf(path string) (PathKind, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PathMissing, nil
		}
		return PathMissing, err
	}
	switch {
	case info.IsDir():
		return PathDirectory, nil
	case info.Mode().IsRegular():
		return PathFile, nil
	default:
		return PathSpecial, nil
	}
}

// MissingRootPolicy decides what happens when a root path does not exist.
type MissingRootPolicy string

const (
	// MissingRootWarn records the root as skipped and keeps going.
	MissingRootWarn MissingRootPolicy = "warn"
	// MissingRootFail aborts before any root is traversed.
	MissingRootFail MissingRootPolicy = "fail"
)

// ParseMissingRootPolicy validates a policy name. Empty means warn.
func ParseMissingRootPolicy(s string) (MissingRootPolicy, error) {
	switch MissingRootPolicy(s) {
	case "", MissingRootWarn:
		return MissingRootWarn, nil
	case MissingRootFail:
		return MissingRootFail, nil
	default:
		return "", fmt.Errorf("unknown missing root policy %q (want warn or fail)", s)
	}
}

// Result is the outcome of one traversal pass.
type Result struct {
	Table   *Table `json:"-"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// Partial reports whether anything was skipped, meaning the counts are
// lower bounds.
func (r *Result) Partial() bool {
	return len(r.Skipped) > 0
}

// Walk visits root and everything beneath it. Directories are listed in
// lexical order. Failures are recorded in Skipped and do not stop the walk;
// only context cancellation is returned. Every call is a fresh visit: a
// directory already counted under an earlier root is counted again.
func (c *Counter) Walk(ctx context.Context, root string) error {
	c.seenDirs = make(map[string]bool)
	return c.visit(ctx, root)
}

func (c *Counter) visit(ctx context.Context, root string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	kind, err := KindOf(root)
	if err != nil {
		_ = c.skip(root, errors.UnreadableFile, "cannot stat path", err)
		return nil
	}

	switch kind {
	case PathMissing:
		_ = c.skip(root, errors.PathNotFound, "path does not exist", nil)
	case PathFile:
		_ = c.CountFile(root)
	case PathSpecial:
		// Opening a pipe blocks, so special files are never read.
		if c.table.Has(filepath.Ext(root)) {
			_ = c.skip(root, errors.UnreadableFile, "not a regular file", nil)
		}
	case PathDirectory:
		return c.walkDir(ctx, root)
	}
	return nil
}

func (c *Counter) walkDir(ctx context.Context, dir string) error {
	// Symlinked directories can form cycles; each real directory is entered
	// once per root.
	key, err := filepath.EvalSymlinks(dir)
	if err != nil {
		key = dir
	}
	if abs, err := filepath.Abs(key); err == nil {
		key = abs
	}
	if c.seenDirs[key] {
		c.logger.Debug("Directory already visited", "path", dir)
		return nil
	}
	c.seenDirs[key] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = c.skip(dir, errors.UnreadableDir, "cannot list directory", err)
		return nil
	}

	for _, entry := range entries {
		if err := c.visit(ctx, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// WalkAll visits every root in order and returns the accumulated result.
// A root listed twice, or nested in another root, is counted each time.
// Under MissingRootFail every root is checked before traversal starts and
// any missing one aborts the pass with a PATH_NOT_FOUND error whose
// details list all missing roots.
func (c *Counter) WalkAll(ctx context.Context, roots []string, policy MissingRootPolicy) (*Result, error) {
	if policy == MissingRootFail {
		var missing []string
		for _, root := range roots {
			kind, err := KindOf(root)
			if err == nil && kind == PathMissing {
				missing = append(missing, root)
			}
		}
		if len(missing) > 0 {
			return nil, errors.NewGenError(errors.PathNotFound,
				fmt.Sprintf("root %q does not exist", missing[0]), nil,
				errors.GetSuggestedFixes(errors.PathNotFound)).
				WithDetails(map[string][]string{"missingRoots": missing})
		}
	}

	for _, root := range roots {
		if err := c.Walk(ctx, root); err != nil {
			return c.result(), err
		}
	}
	return c.result(), nil
}

func (c *Counter) result() *Result {
	return &Result{Table: c.table, Skipped: c.skipped}
}

// Count runs a fresh traversal pass over roots with the given registry.
func Count(ctx context.Context, reg *Registry, roots []string, policy MissingRootPolicy, opts ...Option) (*Result, error) {
	return NewCounter(reg, opts...).WalkAll(ctx, roots, policy)
}
