package langdetect_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/classifier"
	"github.com/yaklabco/linguo/pkg/filters"
	"github.com/yaklabco/linguo/pkg/heuristics"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

//nolint:gochecknoglobals // trained once for the whole package
var defaultDetector = sync.OnceValues(func() (*langdetect.Detector, error) {
	return langdetect.NewDefault(langdetect.Options{})
})

func newDetector(t testing.TB) *langdetect.Detector {
	t.Helper()
	d, err := defaultDetector()
	require.NoError(t, err)
	return d
}

const goSource = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`

func TestDetect(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	tests := []struct {
		name    string
		path    string
		content []byte
		want    langdetect.Guess
	}{
		{
			name:    "go by extension",
			path:    "main.go",
			content: []byte(goSource),
			want:    langdetect.Guess{Language: "Go", Safe: true, Strategy: langdetect.StrategyExtension},
		},
		{
			name:    "python by shebang",
			path:    "script",
			content: []byte("#!/usr/bin/env python3\nprint('hi')\n"),
			want:    langdetect.Guess{Language: "Python", Safe: true, Strategy: langdetect.StrategyShebang},
		},
		{
			name:    "versioned interpreter",
			path:    "tool",
			content: []byte("#!/usr/local/bin/python3.11\nimport sys\n"),
			want:    langdetect.Guess{Language: "Python", Safe: true, Strategy: langdetect.StrategyShebang},
		},
		{
			name:    "c++ header by heuristic",
			path:    "ambiguous.h",
			content: []byte("#pragma once\n\nclass Widget {\npublic:\n  int size() const;\n};\n"),
			want:    langdetect.Guess{Language: "C++", Safe: true, Strategy: langdetect.StrategyHeuristic},
		},
		{
			name:    "objective-c header by heuristic",
			path:    "View.h",
			content: []byte("#import <UIKit/UIKit.h>\n@interface View : UIView\n@end\n"),
			want:    langdetect.Guess{Language: "Objective-C", Safe: true, Strategy: langdetect.StrategyHeuristic},
		},
		{
			name:    "binary",
			path:    "data.bin",
			content: []byte("\x00\x01\x02\x03"),
			want:    langdetect.Guess{Language: langdetect.NoLanguage, Strategy: langdetect.StrategyBinary},
		},
		{
			name:    "invalid utf8 is binary",
			path:    "main.go",
			content: []byte{'p', 'k', 'g', 0xff, 0xfe},
			want:    langdetect.Guess{Language: langdetect.NoLanguage, Strategy: langdetect.StrategyBinary},
		},
		{
			name: "unknown extension without content",
			path: "x.unknownext",
			want: langdetect.Guess{Language: langdetect.UnknownLanguage, Strategy: langdetect.StrategyNone},
		},
		{
			name:    "unknown extension with empty content",
			path:    "x.unknownext",
			content: []byte{},
			want:    langdetect.Guess{Language: langdetect.UnknownLanguage, Strategy: langdetect.StrategyNone},
		},
		{
			name:    "whitespace only",
			path:    "blank",
			content: []byte("  \n\t\n"),
			want:    langdetect.Guess{Language: langdetect.UnknownLanguage, Strategy: langdetect.StrategyNone},
		},
		{
			name:    "exact filename",
			path:    "build/Dockerfile",
			content: []byte("FROM alpine\n"),
			want:    langdetect.Guess{Language: "Dockerfile", Safe: true, Strategy: langdetect.StrategyFilename},
		},
		{
			name:    "filename beats extension",
			path:    "CMakeLists.txt",
			content: []byte("project(x)\n"),
			want:    langdetect.Guess{Language: "CMake", Safe: true, Strategy: langdetect.StrategyFilename},
		},
		{
			name:    "shebang beats extension",
			path:    "run.txt",
			content: []byte("#!/bin/bash\necho hi\n"),
			want:    langdetect.Guess{Language: "Shell", Safe: true, Strategy: langdetect.StrategyShebang},
		},
		{
			name:    "emacs modeline",
			path:    "notes",
			content: []byte("# -*- mode: ruby -*-\nputs 1\n"),
			want:    langdetect.Guess{Language: "Ruby", Safe: true, Strategy: langdetect.StrategyModeline},
		},
		{
			name:    "vim modeline beats extension",
			path:    "snippet.txt",
			content: []byte("int x;\n/* vim: set ft=c: */\n"),
			want:    langdetect.Guess{Language: "C", Safe: true, Strategy: langdetect.StrategyModeline},
		},
		{
			name: "ambiguous extension without content",
			path: "foo.h",
			want: langdetect.Guess{Language: "C", Strategy: langdetect.StrategyClassifier},
		},
		{
			name:    "upper case extension",
			path:    "MAIN.GO",
			content: []byte(goSource),
			want:    langdetect.Guess{Language: "Go", Safe: true, Strategy: langdetect.StrategyExtension},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.Detect(tt.path, tt.content))
		})
	}
}

func TestDetect_ClassifierFallbacks(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	t.Run("ambiguous extension without heuristic match", func(t *testing.T) {
		t.Parallel()
		g := d.Detect("plain.h", []byte("#ifndef FOO_H\n#define FOO_H\nint foo(void);\n#endif\n"))
		assert.False(t, g.Safe)
		assert.Equal(t, langdetect.StrategyClassifier, g.Strategy)
		assert.Contains(t, []string{"C", "C++", "Objective-C"}, g.Language)
	})

	t.Run("no catalog signal", func(t *testing.T) {
		t.Parallel()
		g := d.Detect("snippet.unknownext", []byte(goSource))
		assert.False(t, g.Safe)
		assert.Equal(t, langdetect.StrategyClassifier, g.Strategy)
		assert.Equal(t, "Go", g.Language)
	})
}

func TestDetect_ContentLimit(t *testing.T) {
	t.Parallel()

	d, err := langdetect.NewDefault(langdetect.Options{ContentLimit: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, d.ContentLimit())

	g := d.Detect("ambiguous.h", []byte("#pragma once\n\nclass Widget {\npublic:\n};\n"))
	assert.False(t, g.Safe)
	assert.Equal(t, langdetect.StrategyClassifier, g.Strategy)
}

func TestDetect_DisableModelines(t *testing.T) {
	t.Parallel()

	d, err := langdetect.NewDefault(langdetect.Options{DisableModelines: true})
	require.NoError(t, err)

	g := d.Detect("snippet.txt", []byte("int x;\n/* vim: set ft=c: */\n"))
	assert.Equal(t, langdetect.Guess{Language: "Text", Safe: true, Strategy: langdetect.StrategyExtension}, g)
}

func TestDetect_SafeSignalsNeverFallBack(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	// Content that reads as Python must not override an exact filename or
	// shebang signal.
	python := "import os\n\ndef main():\n    print(os.getcwd())\n"
	assert.Equal(t, "Makefile", d.Detect("Makefile", []byte(python)).Language)
	assert.Equal(t, "Shell", d.Detect("x", []byte("#!/bin/sh\n"+python)).Language)
}

func TestDetect_Concurrent(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	inputs := []struct {
		path    string
		content []byte
	}{
		{"main.go", []byte(goSource)},
		{"plain.h", []byte("int foo(void);\n")},
		{"x.unknownext", []byte("def f():\n    return 1\n")},
		{"script", []byte("#!/usr/bin/env ruby\nputs 1\n")},
	}

	want := make([]langdetect.Guess, len(inputs))
	for i, in := range inputs {
		want[i] = d.Detect(in.path, in.content)
	}

	const workers = 8
	results := make([][]langdetect.Guess, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				for _, in := range inputs {
					results[w] = append(results[w], d.Detect(in.path, in.content))
				}
			}
		}()
	}
	wg.Wait()

	for w := range workers {
		for i, got := range results[w] {
			assert.Equal(t, want[i%len(inputs)], got)
		}
	}
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	assert.Equal(t, []string{"C", "C++", "Objective-C"}, d.Candidates("x.h", nil))
	assert.Equal(t, []string{"Go"}, d.Candidates("x.go", nil))
	assert.Equal(t, []string{"Python"}, d.Candidates("x", []byte("#!/usr/bin/python\n")))
	assert.Equal(t, []string{"Makefile"}, d.Candidates("Makefile", nil))
	assert.Nil(t, d.Candidates("x.unknownext", nil))
}

func TestRank(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	ranked := d.Rank([]byte(goSource), []string{"Python", "Go"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "Go", ranked[0].Language)

	empty := d.Rank(nil, []string{"Python", "Go"})
	require.Len(t, empty, 2)
	assert.Equal(t, "Go", empty[0].Language)
	assert.Zero(t, empty[0].Score)
}

func TestGuess_IsUnknown(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.Guess{Language: langdetect.NoLanguage}.IsUnknown())
	assert.True(t, langdetect.Guess{Language: langdetect.UnknownLanguage}.IsUnknown())
	assert.False(t, langdetect.Guess{Language: "Go"}.IsUnknown())
}

func TestFilterQueries(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	assert.True(t, d.IsVendor("vendor/x/y.go"))
	assert.True(t, d.IsDocumentation("docs/guide.md"))
	assert.True(t, d.IsTest("pkg/a_test.go"))
	assert.True(t, d.IsImage("logo.png"))
	assert.True(t, d.IsDotFile(".bashrc"))
	assert.True(t, d.IsBinary([]byte{0}))
	assert.True(t, d.IsGenerated("x.go", []byte("// Code generated by x. DO NOT EDIT.\n")))

	// Vendored and generated at once.
	assert.True(t, d.IsVendor("vendor/api/api.pb.go"))
	assert.True(t, d.IsGenerated("vendor/api/api.pb.go", nil))

	assert.True(t, d.IsConfiguration("config.yaml"))
	assert.True(t, d.IsConfiguration("Cargo.lock"))
	assert.False(t, d.IsConfiguration("main.go"))
	assert.False(t, d.IsConfiguration("app.ts"))

	assert.True(t, d.IsAuxiliaryLanguage("Markdown"))
	assert.True(t, d.IsAuxiliaryLanguage("CMake"))
	assert.False(t, d.IsAuxiliaryLanguage("Go"))
}

func TestCatalogQueries(t *testing.T) {
	t.Parallel()

	d := newDetector(t)

	assert.Equal(t, []string{"Go"}, d.LanguagesForExtension(".go"))
	assert.Equal(t, []string{"Go Module"}, d.LanguagesForFilename("go.mod"))
	lang, ok := d.LanguageByAlias("golang")
	assert.True(t, ok)
	assert.Equal(t, "Go", lang)
	assert.Equal(t, catalog.TypeProgramming, d.LanguageType("Go"))
	assert.Contains(t, d.Languages(), "Python")
	assert.Equal(t, "text/plain", d.MIMEType("x.unknownext", ""))
	assert.NotEmpty(t, d.Color("Go"))
}

func TestNew_Incomplete(t *testing.T) {
	t.Parallel()

	_, err := langdetect.New(langdetect.Components{}, langdetect.Options{})
	require.ErrorIs(t, err, langdetect.ErrIncomplete)
}

func TestNew_RulesMustMatchCatalog(t *testing.T) {
	t.Parallel()

	cat, err := catalog.Default()
	require.NoError(t, err)
	model, err := classifier.Default()
	require.NoError(t, err)
	flt, err := filters.Default()
	require.NoError(t, err)
	rules, err := heuristics.Load([]byte("version: \"1\"\ndisambiguations:\n  - extensions: [.h]\n    rules:\n      - {language: Go}\n"))
	require.NoError(t, err)

	_, err = langdetect.New(langdetect.Components{Catalog: cat, Heuristics: rules, Model: model, Filters: flt}, langdetect.Options{})
	require.ErrorIs(t, err, heuristics.ErrInvalidRules)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "languages.yaml")
	require.NoError(t, os.WriteFile(catalogPath, catalog.DefaultData(), 0o600))

	d, err := langdetect.Load(langdetect.Sources{Catalog: catalogPath}, langdetect.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Go", d.Detect("main.go", []byte(goSource)).Language)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("version: \"1\"\nlanguages: []\n"), 0o600))

	_, err = langdetect.Load(langdetect.Sources{
		Catalog: broken,
		Model:   filepath.Join(dir, "missing.gob"),
	}, langdetect.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
}
