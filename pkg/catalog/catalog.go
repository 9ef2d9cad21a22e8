// Package catalog holds the signature catalog: the closed set of languages
// linguo can name, and the extension, filename and interpreter keys that point
// at them.
//
// A Catalog is built once from structured data and never mutated afterwards,
// so a single value can be shared by any number of goroutines.
package catalog

import (
	"cmp"
	"path/filepath"
	"slices"
	"strings"
)

// Type classifies a language the way the catalog data declares it.
type Type string

// Language types.
const (
	TypeUnknown     Type = ""
	TypeProgramming Type = "programming"
	TypeData        Type = "data"
	TypeMarkup      Type = "markup"
	TypeProse       Type = "prose"
)

// DefaultColor is reported for languages without a color of their own.
const DefaultColor = "#cccccc"

// Language is one catalog entry.
type Language struct {
	Name         string   `yaml:"name"                   json:"name"`
	Type         Type     `yaml:"type"                   json:"type"`
	Group        string   `yaml:"group,omitempty"        json:"group,omitempty"`
	Color        string   `yaml:"color,omitempty"        json:"color,omitempty"`
	MIME         string   `yaml:"mime,omitempty"         json:"mime,omitempty"`
	Aliases      []string `yaml:"aliases,omitempty"      json:"aliases,omitempty"`
	Extensions   []string `yaml:"extensions,omitempty"   json:"extensions,omitempty"`
	Filenames    []string `yaml:"filenames,omitempty"    json:"filenames,omitempty"`
	Interpreters []string `yaml:"interpreters,omitempty" json:"interpreters,omitempty"`
}

// Catalog is the immutable signature catalog.
type Catalog struct {
	version   string
	languages []Language
	byName    map[string]int
	byAlias   map[string]string

	// Extensions containing an upper-case letter are matched exactly and live
	// in extExact. Lower-case extensions are matched after folding the input.
	extExact  map[string][]string
	extFolded map[string][]string

	filenames    map[string][]string
	interpreters map[string][]string
}

// Version returns the data version the catalog was loaded from.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of languages.
func (c *Catalog) Len() int {
	return len(c.languages)
}

// Languages returns all language names sorted alphabetically.
func (c *Catalog) Languages() []string {
	names := make([]string, 0, len(c.languages))
	for i := range c.languages {
		names = append(names, c.languages[i].Name)
	}
	slices.SortFunc(names, cmp.Compare[string])
	return names
}

// Language returns a copy of the entry for name.
func (c *Catalog) Language(name string) (Language, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return Language{}, false
	}
	lang := c.languages[idx]
	lang.Aliases = slices.Clone(lang.Aliases)
	lang.Extensions = slices.Clone(lang.Extensions)
	lang.Filenames = slices.Clone(lang.Filenames)
	lang.Interpreters = slices.Clone(lang.Interpreters)
	return lang, true
}

// Has reports whether name is a catalog language.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// LanguagesForExtension returns the languages registered for ext, which must
// include the leading dot. Unknown extensions yield nil.
func (c *Catalog) LanguagesForExtension(ext string) []string {
	if langs, ok := c.extExact[ext]; ok {
		return slices.Clone(langs)
	}
	return slices.Clone(c.extFolded[strings.ToLower(ext)])
}

// LookupExtension finds the extension of filename that the catalog knows.
// Every dot in the basename is tried from the leftmost, so compound
// extensions such as ".cmake.in" win over their final component. It returns
// the matched extension and its languages, or "" and nil.
func (c *Catalog) LookupExtension(filename string) (string, []string) {
	base := filepath.Base(filename)
	for i := range len(base) {
		if base[i] != '.' {
			continue
		}
		ext := base[i:]
		if langs := c.LanguagesForExtension(ext); len(langs) > 0 {
			return ext, langs
		}
	}
	return "", nil
}

// LanguagesForFilename returns the languages registered for an exact
// basename. Directory components of name are ignored.
func (c *Catalog) LanguagesForFilename(name string) []string {
	return slices.Clone(c.filenames[filepath.Base(name)])
}

// LanguagesForInterpreter returns the languages registered for a shebang
// interpreter name such as "python3".
func (c *Catalog) LanguagesForInterpreter(interpreter string) []string {
	return slices.Clone(c.interpreters[interpreter])
}

// LanguageByAlias resolves a case-insensitive alias or language name.
// Spaces and dashes are interchangeable.
func (c *Catalog) LanguageByAlias(alias string) (string, bool) {
	name, ok := c.byAlias[normalizeAlias(alias)]
	return name, ok
}

// LanguageType returns the declared type of name, or TypeUnknown.
func (c *Catalog) LanguageType(name string) Type {
	if idx, ok := c.byName[name]; ok {
		return c.languages[idx].Type
	}
	return TypeUnknown
}

// Group returns the language name is grouped under, or name itself.
func (c *Catalog) Group(name string) string {
	if idx, ok := c.byName[name]; ok && c.languages[idx].Group != "" {
		return c.languages[idx].Group
	}
	return name
}

// Color returns the display color of name, falling back to its group and
// then to DefaultColor.
func (c *Catalog) Color(name string) string {
	if idx, ok := c.byName[name]; ok && c.languages[idx].Color != "" {
		return c.languages[idx].Color
	}
	if idx, ok := c.byName[c.Group(name)]; ok && c.languages[idx].Color != "" {
		return c.languages[idx].Color
	}
	return DefaultColor
}

// MIMEType returns the MIME type for a file of the given language.
func (c *Catalog) MIMEType(path, name string) string {
	if idx, ok := c.byName[name]; ok && c.languages[idx].MIME != "" {
		return c.languages[idx].MIME
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png", ".gif":
		return "image/" + ext[1:]
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "text/plain"
}

// Extensions returns the extensions declared for name.
func (c *Catalog) Extensions(name string) []string {
	if idx, ok := c.byName[name]; ok {
		return slices.Clone(c.languages[idx].Extensions)
	}
	return nil
}

// OfType returns the names of all languages of type t, sorted.
func (c *Catalog) OfType(t Type) []string {
	var names []string
	for i := range c.languages {
		if c.languages[i].Type == t {
			names = append(names, c.languages[i].Name)
		}
	}
	slices.Sort(names)
	return names
}

func normalizeAlias(alias string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(alias)), " ", "-")
}

func hasUpper(s string) bool {
	return strings.ToLower(s) != s
}
