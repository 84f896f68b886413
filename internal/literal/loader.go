package literal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/fnlists/internal/ctxlog"
	"github.com/vk/fnlists/internal/fsutil"
	"github.com/vk/fnlists/internal/sharedlist"
	"golang.org/x/sync/errgroup"
)

// Extensions lists the file extensions the loader understands.
var Extensions = []string{".hcl", ".yaml", ".yml"}

// Loader reads literal files and materializes their lists.
type Loader struct {
	tracker     sharedlist.Tracker
	parallelism int
}

// Option configures a Loader.
type Option func(*Loader)

// WithTracker makes every list the loader creates report to t.
func WithTracker(t sharedlist.Tracker) Option {
	return func(l *Loader) { l.tracker = t }
}

// WithParallelism bounds how many files are parsed at once. Values below one
// mean no limit.
func WithParallelism(n int) Option {
	return func(l *Loader) { l.parallelism = n }
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every literal file found under paths. Directories are searched
// recursively. Files are parsed concurrently, but the result is ordered by
// path and then by position in the file. List names must be unique across
// all files. On error no lists are left allocated.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]Literal, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	seen := make(map[string]bool)
	for _, p := range paths {
		found, err := fsutil.FindFiles(p, Extensions...)
		if err != nil {
			return nil, fmt.Errorf("failed to find literal files in %s: %w", p, err)
		}
		for _, f := range found {
			// Overlapping paths such as "dir" and "dir/a.hcl" name the same file.
			key, err := filepath.Abs(f)
			if err != nil {
				key = filepath.Clean(f)
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		logger.Warn("No literal files found.", "paths", paths)
		return nil, nil
	}
	logger.Debug("Found literal files to load.", "files", files)

	perFile := make([][]definition, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if l.parallelism > 0 {
		g.SetLimit(l.parallelism)
	}
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			defs, err := parse(path, src)
			if err != nil {
				return err
			}
			perFile[i] = defs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var defs []definition
	for _, d := range perFile {
		defs = append(defs, d...)
	}
	lits, err := l.materialize(defs)
	if err != nil {
		return nil, err
	}
	logger.Info("Literal lists loaded.", "files", len(files), "lists", len(lits))
	return lits, nil
}

// LoadBytes parses a single in-memory document. The filename selects the
// format by extension and is used in error messages.
func (l *Loader) LoadBytes(ctx context.Context, filename string, src []byte) ([]Literal, error) {
	defs, err := parse(filename, src)
	if err != nil {
		return nil, err
	}
	lits, err := l.materialize(defs)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Literal document loaded.", "file", filename, "lists", len(lits))
	return lits, nil
}

func parse(filename string, src []byte) ([]definition, error) {
	if isYAML(filename) {
		return parseYAML(filename, src)
	}
	return parseHCL(filename, src)
}

func (l *Loader) materialize(defs []definition) ([]Literal, error) {
	seen := make(map[string]string, len(defs))
	lits := make([]Literal, 0, len(defs))
	for _, d := range defs {
		if prev, dup := seen[d.name]; dup {
			ReleaseAll(lits)
			return nil, fmt.Errorf("list %q in %s is already defined in %s", d.name, d.source, prev)
		}
		seen[d.name] = d.source

		v, err := sharedlist.NewFromCty(d.desc, d.values, l.tracker)
		if err != nil {
			ReleaseAll(lits)
			return nil, fmt.Errorf("%s: list %q: %w", d.source, d.name, err)
		}
		lits = append(lits, Literal{Name: d.name, Source: d.source, Value: v})
	}
	return lits, nil
}
