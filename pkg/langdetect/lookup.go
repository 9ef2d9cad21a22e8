package langdetect

import (
	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/filters"
)

// Catalog returns the catalog the detector uses.
func (d *Detector) Catalog() *catalog.Catalog {
	return d.catalog
}

// Filters returns the filter rules the detector uses.
func (d *Detector) Filters() *filters.Set {
	return d.filters
}

// ContentLimit returns the number of content bytes the detector inspects.
func (d *Detector) ContentLimit() int {
	return d.limit
}

// LanguagesForExtension returns the catalog languages for ext.
func (d *Detector) LanguagesForExtension(ext string) []string {
	return d.catalog.LanguagesForExtension(ext)
}

// LanguagesForFilename returns the catalog languages for an exact basename.
func (d *Detector) LanguagesForFilename(name string) []string {
	return d.catalog.LanguagesForFilename(name)
}

// LanguageByAlias resolves an alias to a catalog language name.
func (d *Detector) LanguageByAlias(alias string) (string, bool) {
	return d.catalog.LanguageByAlias(alias)
}

// LanguageType returns the type of a catalog language.
func (d *Detector) LanguageType(name string) catalog.Type {
	return d.catalog.LanguageType(name)
}

// Color returns the display color of a language.
func (d *Detector) Color(name string) string {
	return d.catalog.Color(name)
}

// MIMEType returns the MIME type of a file detected as lang.
func (d *Detector) MIMEType(path, lang string) string {
	return d.catalog.MIMEType(path, lang)
}

// Languages returns every catalog language name, sorted.
func (d *Detector) Languages() []string {
	return d.catalog.Languages()
}

// IsVendor reports whether path is vendored code.
func (d *Detector) IsVendor(path string) bool {
	return d.filters.IsVendor(path)
}

// IsDocumentation reports whether path is documentation.
func (d *Detector) IsDocumentation(path string) bool {
	return d.filters.IsDocumentation(path)
}

// IsTest reports whether path is a test file.
func (d *Detector) IsTest(path string) bool {
	return d.filters.IsTest(path)
}

// IsImage reports whether path is an image.
func (d *Detector) IsImage(path string) bool {
	return d.filters.IsImage(path)
}

// IsGenerated reports whether the file was produced by a tool.
func (d *Detector) IsGenerated(path string, content []byte) bool {
	return d.filters.IsGenerated(path, d.truncate(content))
}

// IsBinary reports whether content is binary.
func (d *Detector) IsBinary(content []byte) bool {
	return filters.IsBinary(content)
}

// IsDotFile reports whether the base name of path starts with a dot.
func (d *Detector) IsDotFile(path string) bool {
	return filters.IsDotFile(path)
}

// IsAuxiliaryLanguage reports whether lang is a supporting language such as
// Markdown, CSS or CMake rather than a project's implementation language.
func (d *Detector) IsAuxiliaryLanguage(lang string) bool {
	return d.filters.IsAuxiliaryLanguage(lang)
}

// IsConfiguration reports whether path is a configuration or data file,
// judged by the first catalog language of its filename or extension.
func (d *Detector) IsConfiguration(path string) bool {
	langs := d.catalog.LanguagesForFilename(path)
	if len(langs) == 0 {
		_, langs = d.catalog.LookupExtension(path)
	}
	return len(langs) > 0 && d.filters.IsConfigurationLanguage(langs[0])
}
