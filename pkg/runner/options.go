// Package runner walks a file tree and detects the language of every file
// it finds, concurrently.
package runner

import "github.com/yaklabco/linguo/pkg/config"

// Options controls discovery and detection over a tree.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// ExcludeGlobs are doublestar patterns, relative to WorkingDir, of files
	// or directories to skip.
	ExcludeGlobs []string

	// Include flags turn off the corresponding filter.
	IncludeVendored      bool
	IncludeDocumentation bool
	IncludeDotfiles      bool
	IncludeConfiguration bool
	IncludeGenerated     bool

	// RespectGitignore skips paths matched by .gitignore files found while
	// walking.
	RespectGitignore bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Progress, if set, is called after each file with the number of files
	// done and the total. It is called from a single goroutine.
	Progress func(done, total int)
}

// OptionsFromConfig builds Options for paths from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	scan := cfg.Scan
	return Options{
		Paths:                paths,
		ExcludeGlobs:         scan.Exclude,
		IncludeVendored:      config.Enabled(scan.IncludeVendored, false),
		IncludeDocumentation: config.Enabled(scan.IncludeDocumentation, false),
		IncludeDotfiles:      config.Enabled(scan.IncludeDotfiles, false),
		IncludeConfiguration: config.Enabled(scan.IncludeConfiguration, false),
		IncludeGenerated:     config.Enabled(scan.IncludeGenerated, false),
		RespectGitignore:     config.Enabled(scan.RespectGitignore, true),
		FollowSymlinks:       config.Enabled(scan.FollowSymlinks, false),
		Jobs:                 cfg.Jobs,
	}
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
