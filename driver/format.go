package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Urethramancer/fmt68/format"
)

// Extensions lists the file suffixes collected when a directory is given.
var Extensions = []string{".s", ".asm", ".i", ".a68"}

// Options configures FormatPaths.
type Options struct {
	Formatter *format.Formatter
	// Check reports changes without touching any file.
	Check bool
	// Stdout returns the formatted text in the results instead of rewriting files.
	Stdout bool
	// Jobs limits how many files are formatted at once. Zero means GOMAXPROCS.
	Jobs int
}

// Result captures the outcome for a single file.
type Result struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// FormatPaths formats the given files, and the source files found under the
// given directories. Files are processed concurrently; results come back
// sorted by path. Errors for individual files are reported in their Result.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if opts.Formatter == nil {
		return nil, errors.New("format: no formatter configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine owns one index, so no locking is needed.
	results := make([]Result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	return results, nil
}

func formatFile(path string, opts Options) Result {
	result := Result{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	formatted, changed, err := FormatSource(opts.Formatter, data)
	if err != nil {
		result.Err = err
		return result
	}

	result.Changed = changed
	switch {
	case opts.Check:
	case opts.Stdout:
		result.Formatted = formatted
	case changed:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
			result.Changed = false
		}
	}
	return result
}

func collectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && isSourceFile(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func isSourceFile(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}
