package localfiles

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/git-worktree-cursor/internal/glob"
	"github.com/shinji-kodama/git-worktree-cursor/internal/walker"
)

// DefaultPatterns is the built-in list of local-only file patterns.
// It is never mutated; Patterns returns a copy for callers that need one.
var DefaultPatterns = []string{
	".env*",
	"*.local.*",
	"config.local.*",
	".vscode/settings.json",
}

// Patterns returns a fresh copy of DefaultPatterns.
func Patterns() []string {
	out := make([]string, len(DefaultPatterns))
	copy(out, DefaultPatterns)
	return out
}

const defaultConcurrency = 4

// Result summarises one propagation run. It feeds diagnostic logging only.
type Result struct {
	// Copied lists the relative paths written to the destination, in
	// pattern order.
	Copied []string

	// Failed counts patterns and files that could not be processed.
	Failed int
}

// Propagator copies files matching a fixed pattern list.
type Propagator struct {
	patterns    []string
	logger      *slog.Logger
	concurrency int
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithConcurrency bounds the number of parallel file copies per pattern.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(p *Propagator) {
		if n >= 1 {
			p.concurrency = n
		}
	}
}

// New creates a Propagator for patterns. A nil or empty list falls back to
// DefaultPatterns; a nil logger falls back to slog.Default().
func New(patterns []string, logger *slog.Logger, opts ...Option) *Propagator {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Propagator{
		patterns:    append([]string(nil), patterns...),
		logger:      logger,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Patterns returns the patterns this Propagator applies, in order.
func (p *Propagator) Patterns() []string {
	return append([]string(nil), p.patterns...)
}

// Propagate copies local files from sourceRoot into destRoot on the OS
// filesystem, preserving relative paths. A source file that is a symlink
// is copied as the contents of its target, wherever that lives.
func (p *Propagator) Propagate(ctx context.Context, sourceRoot, destRoot string) Result {
	src := osfs.New(sourceRoot)
	dst := osfs.New(destRoot, osfs.WithBoundOS())
	res := p.PropagateFS(ctx, src, dst)
	p.logger.Debug("local file propagation finished",
		"source", sourceRoot, "dest", destRoot,
		"copied", len(res.Copied), "failed", res.Failed)
	return res
}

// PropagateFS is Propagate over arbitrary billy filesystems, each rooted at
// its working copy.
func (p *Propagator) PropagateFS(ctx context.Context, src, dst billy.Filesystem) Result {
	var res Result
	seen := make(map[string]struct{})

	for _, pattern := range p.patterns {
		matches, err := p.find(src, pattern)
		if err != nil {
			p.logger.Warn("skipping local file pattern", "pattern", pattern, "error", err)
			res.Failed++
			continue
		}

		var fresh []string
		for _, rel := range matches {
			if _, dup := seen[rel]; dup {
				continue
			}
			seen[rel] = struct{}{}
			fresh = append(fresh, rel)
		}

		copied, failed := p.copyAll(ctx, src, dst, fresh)
		res.Copied = append(res.Copied, copied...)
		res.Failed += failed
	}
	return res
}

// find returns the relative paths in src that match pattern. A literal
// pattern only probes its own path instead of scanning the tree.
func (p *Propagator) find(src billy.Filesystem, pattern string) ([]string, error) {
	if !glob.HasWildcard(pattern) {
		info, err := src.Stat(pattern)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil
			}
			return nil, err
		}
		if !info.Mode().IsRegular() {
			return nil, nil
		}
		return []string{path.Clean(pattern)}, nil
	}

	m, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}
	var out []string
	for rel := range walker.Walk(src) {
		if m.Match(rel) {
			out = append(out, rel)
		}
	}
	return out, nil
}

// copyAll copies rels in parallel and returns those that succeeded, in
// input order, together with the failure count.
func (p *Propagator) copyAll(ctx context.Context, src, dst billy.Filesystem, rels []string) ([]string, int) {
	ok := make([]bool, len(rels))
	var (
		mu     sync.Mutex
		failed int
	)

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, rel := range rels {
		g.Go(func() error {
			if err := copyFile(src, dst, rel); err != nil {
				p.logger.Warn("failed to copy local file", "path", rel, "error", err)
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			p.logger.Info("copied local file", "path", rel)
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	copied := make([]string, 0, len(rels))
	for i, rel := range rels {
		if ok[i] {
			copied = append(copied, rel)
		}
	}
	return copied, failed
}

// copyFile copies rel from src to dst, creating parent directories and
// overwriting any existing file. The source file mode is preserved.
func copyFile(src, dst billy.Filesystem, rel string) error {
	info, err := src.Stat(rel)
	if err != nil {
		return err
	}

	in, err := src.Open(rel)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", rel, err)
	}
	defer func() { _ = in.Close() }()

	if dir := path.Dir(rel); dir != "." {
		if err := dst.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	out, err := dst.OpenFile(rel, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", rel, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", rel, err)
	}
	return out.Close()
}
