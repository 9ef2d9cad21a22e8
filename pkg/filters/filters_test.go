package filters

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSet(t *testing.T) *Set {
	t.Helper()
	s, err := Default()
	require.NoError(t, err)
	return s
}

func TestIsVendor(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)

	tests := []struct {
		path string
		want bool
	}{
		{"vendor/github.com/pkg/errors/errors.go", true},
		{"web/node_modules/react/index.js", true},
		{"static/jquery-3.6.0.js", true},
		{"assets/app.min.js", true},
		{"third_party/zlib/zlib.h", true},
		{"pkg/x/testdata/input.txt", true},
		{"lib/python3.12/site-packages/requests/api.py", true},
		{".venv/bin/activate", true},
		{`vendor\windows\path.go`, filepath.Separator == '\\'},
		{"cmd/linguo/main.go", false},
		{"src/vendorize.go", false},
		{"README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.IsVendor(tt.path))
		})
	}
}

func TestIsDocumentation(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)

	tests := []struct {
		path string
		want bool
	}{
		{"docs/index.md", true},
		{"Documentation/guide.txt", true},
		{"src/documentation/api.txt", true},
		{"README.md", true},
		{"pkg/Readme", true},
		{"CHANGELOG.md", true},
		{"LICENSE", true},
		{"examples/hello/main.go", true},
		{"share/man/man1/linguo.1", true},
		{"./docs/x.go", true},
		{"src/docs/x.go", false},
		{"pkg/readme_parser.go", false},
		{"main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.IsDocumentation(tt.path))
		})
	}
}

func TestIsTest(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)

	tests := []struct {
		path string
		want bool
	}{
		{"pkg/filters/filters_test.go", true},
		{"tests/test_api.py", true},
		{"spec/models/user_spec.rb", true},
		{"src/app.test.ts", true},
		{"src/Widget.spec.js", true},
		{"src/test/java/com/acme/FooTest.java", true},
		{"Project.Tests/ParserTests.cs", true},
		{"web/__tests__/button.jsx", true},
		{"pkg/filters/filters.go", false},
		{"src/contest.py", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, s.IsTest(tt.path))
		})
	}
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)
	longLine := strings.Repeat("a", 500) + "\n"

	tests := []struct {
		name    string
		path    string
		content string
		want    bool
	}{
		{"xib", "MainMenu.nib", "", true},
		{"xcode state", "x.xcodeproj/project.xcworkspace/UserInterfaceState.xcuserstate", "", true},
		{"source map", "dist/app.js.map", "", true},
		{"lock file", "web/package-lock.json", "", true},
		{"go sum", "go.sum", "", true},
		{"protobuf go", "api/v1/service.pb.go", "", true},
		{"protobuf python", "api/service_pb2.py", "", true},
		{"go marker", "gen.go", "// Code generated by stringer; DO NOT EDIT.\n\npackage x\n", true},
		{"generated tag", "Foo.java", "/*\n * @generated\n */\nclass Foo {}\n", true},
		{"prose marker", "x.c", "/* This file was automatically generated. */\n", true},
		{"minified", "bundle.js", longLine + longLine, true},
		{"long css is minified", "site.css", longLine, true},
		{"long go is not minified", "big.go", longLine, false},
		{"marker too late", "late.go", strings.Repeat("\n", 20) + "// Code generated by x. DO NOT EDIT.\n", false},
		{"hand written", "main.go", "package main\n\nfunc main() {}\n", false},
		{"no content", "main.go", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var content []byte
			if tt.content != "" {
				content = []byte(tt.content)
			}
			assert.Equal(t, tt.want, s.IsGenerated(tt.path, content))
		})
	}
}

func TestIsImage(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)
	assert.True(t, s.IsImage("logo.png"))
	assert.True(t, s.IsImage("photos/IMG_0001.JPG"))
	assert.True(t, s.IsImage("anim.gif"))
	assert.False(t, s.IsImage("logo.svg"))
	assert.False(t, s.IsImage("png"))
}

func TestConfigurationLanguages(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)
	assert.Equal(t, []string{"INI", "JSON", "SQL", "TOML", "XML", "YAML"}, s.ConfigurationLanguages())
	assert.True(t, s.IsConfigurationLanguage("YAML"))
	assert.False(t, s.IsConfigurationLanguage("Go"))
	assert.False(t, s.IsConfigurationLanguage("yaml"))
}

func TestAuxiliaryLanguages(t *testing.T) {
	t.Parallel()

	s := defaultSet(t)
	aux := s.AuxiliaryLanguages()
	assert.Len(t, aux, 32)
	assert.True(t, slices.IsSorted(aux))

	// Every configuration language is also auxiliary.
	for _, lang := range s.ConfigurationLanguages() {
		assert.True(t, s.IsAuxiliaryLanguage(lang), lang)
	}

	for _, lang := range []string{"Markdown", "HTML", "CSS", "TeX", "Graphviz (DOT)", "fish"} {
		assert.True(t, s.IsAuxiliaryLanguage(lang), lang)
	}
	for _, lang := range []string{"Go", "Python", "markdown", ""} {
		assert.False(t, s.IsAuxiliaryLanguage(lang), lang)
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	euro := "€"
	// Place a multi-byte rune so the sniff window cuts it in half.
	cut := strings.Repeat("a", BinarySniffLen-1) + euro

	tests := []struct {
		name    string
		content []byte
		want    bool
	}{
		{"empty", nil, false},
		{"ascii", []byte("hello\nworld\n"), false},
		{"utf8", []byte("héllo wörld " + euro), false},
		{"nul byte", []byte("abc\x00def"), true},
		{"invalid utf8", []byte{'a', 0xff, 'b'}, true},
		{"png header", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), true},
		{"rune cut by window", []byte(cut), false},
		{"nul past window", append(bytes.Repeat([]byte("a"), BinarySniffLen), 0), false},
		{"invalid rune at end", []byte("abc\xe2\x82"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBinary(tt.content))
		})
	}
}

func TestIsDotFile(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDotFile(".gitignore"))
	assert.True(t, IsDotFile("a/b/.env"))
	assert.False(t, IsDotFile("a/.config/settings.json"))
	assert.False(t, IsDotFile("main.go"))
	assert.False(t, IsDotFile("."))
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	base := "version: \"1\"\nvendor: {}\ndocumentation: {}\ntest: {}\ngenerated: {}\n"

	tests := []struct {
		name string
		data string
	}{
		{"missing sections", "version: \"1\"\n"},
		{"unknown key", base + "extra: true\n"},
		{"bad regexp", strings.Replace(base, "vendor: {}", "vendor: {regex: ['(']}", 1)},
		{"bad glob", strings.Replace(base, "test: {}", "test: {glob: ['[']}", 1)},
		{"bad content regexp", strings.Replace(base, "generated: {}", "generated: {content: ['(']}", 1)},
		{"bad extension", base + "images: [png]\n"},
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

func TestLoad_Minimal(t *testing.T) {
	t.Parallel()

	s, err := Load([]byte("version: \"2\"\nvendor: {glob: ['**/deps/**']}\ndocumentation: {}\ntest: {}\ngenerated: {}\n"))
	require.NoError(t, err)
	assert.Equal(t, "2", s.Version())
	assert.True(t, s.IsVendor("a/deps/b.c"))
	assert.False(t, s.IsDocumentation("README"))
	assert.False(t, s.IsGenerated("x.min.js", []byte(strings.Repeat("x", 1000))))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "filters.yaml")
	require.NoError(t, os.WriteFile(path, defaultData, 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", s.Version())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
