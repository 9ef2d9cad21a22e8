package crosscheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/linguo/internal/crosscheck"
	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		content  []byte
		language string
		typ      catalog.Type
	}{
		{"go source", "main.go", []byte("package main\n\nfunc main() {}\n"), "Go", catalog.TypeProgramming},
		{"path only", "Makefile", nil, "Makefile", catalog.TypeProgramming},
		{"binary", "blob.go", []byte{0x00, 0x01, 0x02, 0x00}, "", catalog.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := crosscheck.Detect(tt.path, tt.content)
			assert.Equal(t, tt.language, got.Language)
			assert.Equal(t, tt.typ, got.Type)
		})
	}
}

func TestDetectFlags(t *testing.T) {
	t.Parallel()

	assert.True(t, crosscheck.Detect("vendor/github.com/x/y.go", nil).Vendor)
	assert.True(t, crosscheck.Detect("docs/index.md", nil).Documentation)
	assert.False(t, crosscheck.Detect("yarn.lock", nil).Generated, "generated needs content")
}

func TestCompare(t *testing.T) {
	t.Parallel()

	content := []byte("package main\n")

	tests := []struct {
		name  string
		guess langdetect.Guess
		agree bool
	}{
		{"same language", langdetect.Guess{Language: "Go", Safe: true, Strategy: langdetect.StrategyExtension}, true},
		{"case differs", langdetect.Guess{Language: "go"}, true},
		{"different language", langdetect.Guess{Language: "Ruby"}, false},
		{"unknown against known", langdetect.Guess{Language: langdetect.UnknownLanguage}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmp := crosscheck.Compare("main.go", content, tt.guess)
			assert.Equal(t, "main.go", cmp.Path)
			assert.Equal(t, tt.guess, cmp.Guess)
			assert.Equal(t, tt.agree, cmp.Agree)
		})
	}
}

func TestCompareUnknown(t *testing.T) {
	t.Parallel()

	cmp := crosscheck.Compare("blob.bin", []byte{0x00, 0xff, 0x00}, langdetect.Guess{Strategy: langdetect.StrategyBinary, Safe: true})
	assert.True(t, cmp.Agree)
	assert.Empty(t, cmp.Reference.Language)
}
