package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/yaklabco/linguo/pkg/runner"
)

// writeTree creates files (slash paths relative to dir) with the given
// content.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

// relative strips dir from every discovered path.
func relative(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover_SingleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{".hidden.go": "package x\n"})
	file := filepath.Join(dir, ".hidden.go")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{file},
		WorkingDir: dir,
	}, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	// Explicit files bypass the dotfile filter.
	if len(files) != 1 || files[0] != file {
		t.Errorf("Discover() = %v, want [%s]", files, file)
	}
}

func TestDiscover_Filters(t *testing.T) {
	t.Parallel()

	tree := map[string]string{
		"main.go":                    "package main\n",
		"lib/util.py":                "x = 1\n",
		"vendor/dep/dep.go":          "package dep\n",
		"node_modules/pkg/index.js":  "module.exports = {}\n",
		"docs/guide.md":              "# Guide\n",
		"README.md":                  "# Readme\n",
		".env":                       "A=1\n",
		".config/tool.yml":           "a: 1\n",
		".git/HEAD":                  "ref: refs/heads/main\n",
		"assets/logo.png":            "not really a png",
		"internal/testdata/case.go":  "package testdata\n",
		"build/out.js":               "var x;\n",
		".gitignore":                 "build/\n*.log\n",
		"debug.log":                  "log line\n",
		"sub/.gitignore":             "skip.rb\n",
		"sub/skip.rb":                "puts 1\n",
		"sub/keep.rb":                "puts 2\n",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "defaults",
			opts: runner.Options{RespectGitignore: true},
			want: []string{"lib/util.py", "main.go", "sub/keep.rb"},
		},
		{
			name: "without gitignore",
			opts: runner.Options{},
			want: []string{"build/out.js", "debug.log", "lib/util.py", "main.go", "sub/keep.rb", "sub/skip.rb"},
		},
		{
			name: "include vendored and documentation",
			opts: runner.Options{RespectGitignore: true, IncludeVendored: true, IncludeDocumentation: true},
			want: []string{
				"README.md", "docs/guide.md", "internal/testdata/case.go", "lib/util.py", "main.go",
				"node_modules/pkg/index.js", "sub/keep.rb", "vendor/dep/dep.go",
			},
		},
		{
			name: "include dotfiles never enters vcs dirs",
			opts: runner.Options{RespectGitignore: true, IncludeDotfiles: true},
			want: []string{".config/tool.yml", ".env", ".gitignore", "lib/util.py", "main.go", "sub/.gitignore", "sub/keep.rb"},
		},
		{
			name: "exclude globs",
			opts: runner.Options{RespectGitignore: true, ExcludeGlobs: []string{"lib/**", "*.rb"}},
			want: []string{"main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree)

			opts := tt.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts, nil)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			got := relative(t, dir, files)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Discover() =\n  %v\nwant\n  %v", got, tt.want)
			}
		})
	}
}

func TestDiscover_FromParentDirectory(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	repo := filepath.Join(parent, "repo")
	writeTree(t, repo, map[string]string{
		"main.go":            "package main\n",
		"docs/guide.go":      "package docs\n",
		"deps/lib/x.go":      "package lib\n",
		"Documentation/y.go": "package y\n",
		"src/docs/keep.go":   "package docs\n",
	})

	// Root-anchored rules such as ^docs/ apply to the scanned directory
	// whichever working directory the scan runs from.
	for _, wd := range []string{repo, parent} {
		files, err := runner.Discover(context.Background(), runner.Options{
			Paths:      []string{repo},
			WorkingDir: wd,
		}, nil)
		if err != nil {
			t.Fatalf("Discover(wd=%s) error = %v", wd, err)
		}

		got := relative(t, repo, files)
		want := []string{"main.go", "src/docs/keep.go"}
		if !slices.Equal(got, want) {
			t.Errorf("Discover(wd=%s) = %v, want %v", wd, got, want)
		}
	}
}

func TestDiscoverFiles_Rel(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	outside := t.TempDir()
	writeTree(t, parent, map[string]string{"repo/cmd/main.go": "package main\n"})
	writeTree(t, outside, map[string]string{"tool/gen.pb.go": "package tool\n"})
	explicit := filepath.Join(outside, "tool", "gen.pb.go")

	files, err := runner.DiscoverFiles(context.Background(), runner.Options{
		Paths:      []string{"repo", explicit},
		WorkingDir: parent,
	}, nil)
	if err != nil {
		t.Fatalf("DiscoverFiles() error = %v", err)
	}

	got := make(map[string]string, len(files))
	for _, f := range files {
		got[f.Path] = f.Rel
	}

	want := map[string]string{
		filepath.Join(parent, "repo", "cmd", "main.go"): "cmd/main.go",
		explicit: "gen.pb.go",
	}
	if len(got) != len(want) {
		t.Fatalf("DiscoverFiles() = %v, want %v", got, want)
	}
	for path, rel := range want {
		if got[path] != rel {
			t.Errorf("Rel(%s) = %q, want %q", path, got[path], rel)
		}
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a/x.go": "package a\n", "a/y.go": "package a\n"})

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"a", ".", "a/x.go"},
		WorkingDir: dir,
	}, nil)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if got := relative(t, dir, files); !slices.Equal(got, []string{"a/x.go", "a/y.go"}) {
		t.Errorf("Discover() = %v", got)
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"main.go": "package main\n"})
	writeTree(t, outside, map[string]string{"lib.rs": "fn main() {}\n"})

	if err := os.Symlink(outside, filepath.Join(dir, "linked")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// A cycle back to the root must not recurse forever.
	if err := os.Symlink(dir, filepath.Join(outside, "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	for _, follow := range []bool{false, true} {
		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:     dir,
			FollowSymlinks: follow,
		}, nil)
		if err != nil {
			t.Fatalf("Discover(follow=%v) error = %v", follow, err)
		}

		got := relative(t, dir, files)
		want := []string{"main.go"}
		if follow {
			want = []string{"linked/lib.rs", "main.go"}
		}
		if !slices.Equal(got, want) {
			t.Errorf("Discover(follow=%v) = %v, want %v", follow, got, want)
		}
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()

		_, err := runner.Discover(context.Background(), runner.Options{
			Paths:      []string{"nope"},
			WorkingDir: dir,
		}, nil)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want not-exist", err)
		}
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		t.Parallel()

		_, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:   dir,
			ExcludeGlobs: []string{"[unclosed"},
		}, nil)
		if err == nil {
			t.Fatal("expected error for invalid pattern")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}, nil)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
