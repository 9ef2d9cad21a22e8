package heuristics

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linguo/pkg/catalog"
)

func TestCondition_Match(t *testing.T) {
	t.Parallel()

	a := regexp.MustCompile(`a`)
	b := regexp.MustCompile(`b`)

	tests := []struct {
		name     string
		cond     Condition
		matching string
		noMatch  string
	}{
		{"always", Condition{Kind: KindAlways}, "anything", ""},
		{"pattern any", Condition{Kind: KindPattern, Patterns: []*regexp.Regexp{a, b}}, "b", "c"},
		{"negative", Condition{Kind: KindNegative, Patterns: []*regexp.Regexp{a}}, "b", "a"},
		{"and", Condition{Kind: KindAnd, Terms: []Condition{
			{Kind: KindPattern, Patterns: []*regexp.Regexp{a}},
			{Kind: KindPattern, Patterns: []*regexp.Regexp{b}},
		}}, "ab", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.cond.Match([]byte(tt.matching)))
			if tt.noMatch != "" {
				assert.False(t, tt.cond.Match([]byte(tt.noMatch)))
			}
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "always", KindAlways.String())
	assert.Equal(t, "pattern", KindPattern.String())
	assert.Equal(t, "negative_pattern", KindNegative.String())
	assert.Equal(t, "and", KindAnd.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}

func TestDefault_AgreesWithCatalog(t *testing.T) {
	t.Parallel()

	set, err := Default()
	require.NoError(t, err)

	cat, err := catalog.Default()
	require.NoError(t, err)

	require.NoError(t, set.Check(cat))
	for _, ext := range set.Extensions() {
		assert.GreaterOrEqual(t, len(cat.LanguagesForExtension(ext)), 2, "extension %s is not ambiguous", ext)
	}
}

func TestDefault_Match(t *testing.T) {
	t.Parallel()

	set, err := Default()
	require.NoError(t, err)

	tests := []struct {
		name    string
		ext     string
		content string
		want    string
		ok      bool
	}{
		{"objc header", ".h", "#import <Foundation/Foundation.h>\n@interface Foo : NSObject\n@end\n", "Objective-C", true},
		{"cpp class", ".h", "#pragma once\n\nclass Widget {\npublic:\n  int size() const;\n};\n", "C++", true},
		{"cpp std", ".h", "#include <vector>\nstd::vector<int> v;\n", "C++", true},
		{"plain c header", ".h", "#ifndef FOO_H\n#define FOO_H\nint foo(void);\n#endif\n", "", false},
		{"upper case extension", ".H", "class A {};\n", "C++", true},
		{"prolog", ".pl", "parent(tom, bob).\nancestor(X, Y) :- parent(X, Y).\n", "Prolog", true},
		{"perl", ".pl", "use strict;\nuse warnings;\nprint \"hi\\n\";\n", "Perl", true},
		{"raku", ".pl", "use v6;\nsay 'hello';\n", "Raku", true},
		{"perl module", ".pm", "package Foo;\nuse strict;\n1;\n", "Perl", true},
		{"matlab", ".m", "% compute\nx = linspace(0, 1);\n", "MATLAB", true},
		{"mercury", ".m", ":- module hello.\n", "Mercury", true},
		{"markdown", ".md", "# Title\n\nSome text.\n", "Markdown", true},
		{"empty markdown", ".md", "", "Markdown", true},
		{"gcc md", ".md", ";; Machine description\n(define_insn \"x\")\n", "GCC Machine Description", true},
		{"qmake needs both", ".pro", "HEADERS += a.h\nSOURCES += a.cpp\n", "QMake", true},
		{"qmake half", ".pro", "HEADERS += a.h\n", "", false},
		{"plpgsql", ".sql", "CREATE FUNCTION f() RETURNS int AS $$ SELECT 1 $$ LANGUAGE plpgsql;\n", "PLpgSQL", true},
		{"plsql", ".sql", "SELECT seq.nextval FROM dual;\n", "PLSQL", true},
		{"plain sql", ".sql", "SELECT * FROM users;\n", "SQL", true},
		{"qt translation", ".ts", "<?xml version=\"1.0\"?>\n<TS version=\"2.1\">\n</TS>\n", "XML", true},
		{"typescript", ".ts", "const x: number = 1;\n", "TypeScript", true},
		{"rust", ".rs", "use std::io;\nfn main() {}\n", "Rust", true},
		{"r", ".r", "x <- c(1, 2, 3)\n", "R", true},
		{"rebol", ".r", "REBOL [Title: \"x\"]\n", "Rebol", true},
		{"verilog", ".v", "module counter (clk);\nendmodule\n", "Verilog", true},
		{"coq", ".v", "Theorem t : True.\nProof.\n  trivial.\nQed.\n", "Coq", true},
		{"no rules", ".go", "package main\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := set.Match(tt.ext, []byte(tt.content))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRules_DeclaredOrder(t *testing.T) {
	t.Parallel()

	set, err := Default()
	require.NoError(t, err)

	rules := set.Rules(".pl")
	require.Len(t, rules, 3)
	assert.Equal(t, "Prolog", rules[0].Language)
	assert.Equal(t, "Perl", rules[1].Language)
	assert.Equal(t, "Raku", rules[2].Language)

	sql := set.Rules(".sql")
	require.Len(t, sql, 3)
	assert.Equal(t, KindAlways, sql[2].Condition.Kind)

	pro := set.Rules(".pro")
	assert.Equal(t, KindAnd, pro[2].Condition.Kind)

	ts := set.Rules(".ts")
	assert.Equal(t, KindNegative, ts[1].Condition.Kind)

	assert.Equal(t, set.Rules(".pm"), set.Rules(".t"))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"missing version", "disambiguations: []\n"},
		{"bad regexp", "version: \"1\"\ndisambiguations:\n  - extensions: [.x]\n    rules:\n      - {language: A, pattern: '('}\n"},
		{"unknown named pattern", "version: \"1\"\ndisambiguations:\n  - extensions: [.x]\n    rules:\n      - {language: A, named_pattern: nope}\n"},
		{"two conditions", "version: \"1\"\ndisambiguations:\n  - extensions: [.x]\n    rules:\n      - {language: A, pattern: a, negative_pattern: b}\n"},
		{"duplicate extension", "version: \"1\"\ndisambiguations:\n  - extensions: [.x]\n    rules: [{language: A}]\n  - extensions: [.X]\n    rules: [{language: B}]\n"},
		{"empty rules", "version: \"1\"\ndisambiguations:\n  - extensions: [.x]\n    rules: []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}

func TestCheck_RejectsNonCandidates(t *testing.T) {
	t.Parallel()

	set, err := Load([]byte("version: \"1\"\ndisambiguations:\n  - extensions: [.h]\n    rules:\n      - {language: Go}\n"))
	require.NoError(t, err)

	cat, err := catalog.Default()
	require.NoError(t, err)

	err = set.Check(cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRules)
}
