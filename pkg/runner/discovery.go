package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/yaklabco/linguo/pkg/filters"
)

// ErrNoFiles is returned when discovery finds nothing to detect.
var ErrNoFiles = errors.New("no files found")

// vcsDirs are never descended into, even with IncludeDotfiles.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsDirs = map[string]struct{}{
	".git": {},
	".hg":  {},
	".svn": {},
	".bzr": {},
}

// File is a discovered file.
type File struct {
	// Path is the absolute file path.
	Path string

	// Rel is the slash path the path filters and the detector see: relative
	// to the scanned directory, or to the working directory for files named
	// explicitly.
	Rel string
}

// Discover finds the files under opts.Paths that survive the path filters.
// It returns a deterministically sorted list of absolute file paths. Files
// named explicitly in Paths are only subject to ExcludeGlobs. A nil rules
// set means the built-in filters.
func Discover(ctx context.Context, opts Options, rules *filters.Set) ([]string, error) {
	found, err := DiscoverFiles(ctx, opts, rules)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.Path
	}
	return paths, nil
}

// DiscoverFiles is Discover keeping the filter path of every file.
func DiscoverFiles(ctx context.Context, opts Options, rules *filters.Set) ([]File, error) {
	for _, pattern := range opts.ExcludeGlobs {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	if rules == nil {
		var err error
		if rules, err = filters.Default(); err != nil {
			return nil, err
		}
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w := &walker{
		opts:    opts,
		rules:   rules,
		workDir: workDir,
		ignores: make(map[string]*gitignore.GitIgnore),
		visited: make(map[string]struct{}),
	}

	seen := make(map[string]struct{})
	var files []File
	add := func(f File) {
		if _, ok := seen[f.Path]; !ok {
			seen[f.Path] = struct{}{}
			files = append(files, f)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			rel := w.relPath(absPath, filepath.Dir(absPath))
			if !w.excluded(rel) {
				add(File{Path: absPath, Rel: rel})
			}
			continue
		}

		discovered, err := w.walk(ctx, absPath, absPath)
		if err != nil {
			return nil, err
		}
		for _, f := range discovered {
			add(f)
		}
	}

	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.Path, b.Path) })

	return files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type walker struct {
	opts    Options
	rules   *filters.Set
	workDir string

	// ignores holds the compiled .gitignore of every directory entered so
	// far; a nil entry means the directory has none.
	ignores map[string]*gitignore.GitIgnore

	// visited holds resolved directories to break symlink cycles.
	visited map[string]struct{}
}

// walk recursively walks root and returns the files that pass the filters.
// Filter rules see paths relative to scanRoot, the directory the scan was
// started on, so root-anchored rules such as ^docs/ hold wherever the
// working directory is.
func (w *walker) walk(ctx context.Context, root, scanRoot string) ([]File, error) {
	real, err := filepath.EvalSymlinks(root)
	if err != nil {
		real = root
	}
	if _, ok := w.visited[real]; ok {
		return nil, nil
	}
	w.visited[real] = struct{}{}

	var files []File

	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			// Handle permission errors gracefully.
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := w.relPath(path, root)
		filterRel := rootRelPath(path, scanRoot)

		if entry.IsDir() {
			if path == root {
				w.loadIgnore(filepath.Clean(path))
				return nil
			}
			if w.skipDir(path, rel, filterRel, entry.Name()) {
				return filepath.SkipDir
			}
			w.loadIgnore(path)
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				// Broken or inaccessible symlink.
				return nil //nolint:nilerr // Intentionally skip broken symlinks
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks || w.skipDir(path, rel, filterRel, entry.Name()) {
					return nil
				}
				// WalkDir does not follow links; recurse on the link itself
				// so reported paths stay under the scanned tree.
				subFiles, err := w.walk(ctx, path+string(filepath.Separator), scanRoot)
				if err != nil {
					return err
				}
				files = append(files, subFiles...)
				return nil
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}

		if w.skipFile(path, rel, filterRel) {
			return nil
		}
		files = append(files, File{Path: filepath.Clean(path), Rel: filterRel})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// skipDir and skipFile match ExcludeGlobs against rel, relative to the
// working directory, and the filter rules against filterRel.
func (w *walker) skipDir(path, rel, filterRel, name string) bool {
	if _, ok := vcsDirs[name]; ok {
		return true
	}
	if !w.opts.IncludeDotfiles && filters.IsDotFile(name) {
		return true
	}
	if w.excluded(rel) || w.ignored(path, true) {
		return true
	}

	// Directory rules are written against paths with a trailing slash.
	dir := filterRel + "/"
	if !w.opts.IncludeVendored && w.rules.IsVendor(dir) {
		return true
	}
	if !w.opts.IncludeDocumentation && w.rules.IsDocumentation(dir) {
		return true
	}
	return false
}

func (w *walker) skipFile(path, rel, filterRel string) bool {
	switch {
	case !w.opts.IncludeDotfiles && filters.IsDotFile(filterRel):
		return true
	case w.rules.IsImage(filterRel):
		return true
	case !w.opts.IncludeVendored && w.rules.IsVendor(filterRel):
		return true
	case !w.opts.IncludeDocumentation && w.rules.IsDocumentation(filterRel):
		return true
	case w.excluded(rel):
		return true
	default:
		return w.ignored(path, false)
	}
}

// excluded checks rel against ExcludeGlobs.
func (w *walker) excluded(rel string) bool {
	for _, pattern := range w.opts.ExcludeGlobs {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		// Patterns without a slash match the base name anywhere.
		if !strings.Contains(pattern, "/") {
			if ok, _ := doublestar.Match(pattern, filepath.Base(rel)); ok {
				return true
			}
		}
	}
	return false
}

func (w *walker) loadIgnore(dir string) {
	if !w.opts.RespectGitignore {
		return
	}
	if _, ok := w.ignores[dir]; ok {
		return
	}

	gi, err := gitignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		gi = nil
	}
	w.ignores[dir] = gi
}

// ignored reports whether any .gitignore in an ancestor directory of path
// matches it.
func (w *walker) ignored(path string, isDir bool) bool {
	if !w.opts.RespectGitignore {
		return false
	}

	dir := filepath.Dir(path)
	for {
		if gi := w.ignores[dir]; gi != nil {
			rel, err := filepath.Rel(dir, path)
			if err == nil {
				rel = filepath.ToSlash(rel)
				if gi.MatchesPath(rel) || (isDir && gi.MatchesPath(rel+"/")) {
					return true
				}
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// relPath returns path in slash form relative to the working directory, or
// relative to base when path lies outside it.
func (w *walker) relPath(path, base string) string {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel, err = filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
	}
	return filepath.ToSlash(rel)
}

func rootRelPath(path, root string) string {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
