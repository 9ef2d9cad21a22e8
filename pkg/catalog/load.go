package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/linguo/internal/schema"
)

//go:embed data/languages.yaml
var defaultData []byte

//go:embed data/languages.schema.json
var schemaSource string

const schemaName = "languages.schema.json"

// ErrInvalidCatalog is returned when catalog data is malformed.
var ErrInvalidCatalog = errors.New("invalid catalog")

type document struct {
	Version   string     `yaml:"version"`
	Languages []Language `yaml:"languages"`
}

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Load(defaultData)
}

// DefaultData returns a copy of the embedded catalog source.
func DefaultData() []byte {
	return append([]byte(nil), defaultData...)
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	c, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Load parses, validates and indexes catalog data.
func Load(data []byte) (*Catalog, error) {
	if err := schema.ValidateYAML(schemaName, schemaSource, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	return build(doc)
}

func build(doc document) (*Catalog, error) {
	c := &Catalog{
		version:      doc.Version,
		languages:    doc.Languages,
		byName:       make(map[string]int, len(doc.Languages)),
		byAlias:      make(map[string]string, len(doc.Languages)*2),
		extExact:     make(map[string][]string),
		extFolded:    make(map[string][]string),
		filenames:    make(map[string][]string),
		interpreters: make(map[string][]string),
	}

	var errs []error
	for i, lang := range doc.Languages {
		if _, dup := c.byName[lang.Name]; dup {
			errs = append(errs, fmt.Errorf("language %q declared twice", lang.Name))
			continue
		}
		c.byName[lang.Name] = i
	}

	for _, lang := range doc.Languages {
		if lang.Group != "" {
			if _, ok := c.byName[lang.Group]; !ok {
				errs = append(errs, fmt.Errorf("language %q: unknown group %q", lang.Name, lang.Group))
			}
		}

		for _, alias := range append([]string{lang.Name}, lang.Aliases...) {
			key := normalizeAlias(alias)
			if owner, taken := c.byAlias[key]; taken && owner != lang.Name {
				errs = append(errs, fmt.Errorf("language %q: alias %q already used by %q", lang.Name, alias, owner))
				continue
			}
			c.byAlias[key] = lang.Name
		}

		for _, ext := range lang.Extensions {
			if !strings.HasPrefix(ext, ".") {
				errs = append(errs, fmt.Errorf("language %q: extension %q must start with a dot", lang.Name, ext))
				continue
			}
			if hasUpper(ext) {
				c.extExact[ext] = append(c.extExact[ext], lang.Name)
			} else {
				c.extFolded[ext] = append(c.extFolded[ext], lang.Name)
			}
		}
		for _, name := range lang.Filenames {
			c.filenames[name] = append(c.filenames[name], lang.Name)
		}
		for _, interp := range lang.Interpreters {
			c.interpreters[interp] = append(c.interpreters[interp], lang.Name)
		}
	}

	if len(c.byName) < 2 {
		errs = append(errs, errors.New("at least two languages are required"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return c, nil
}
