package langdetect

import (
	"errors"
	"fmt"

	"github.com/yaklabco/linguo/pkg/catalog"
	"github.com/yaklabco/linguo/pkg/classifier"
	"github.com/yaklabco/linguo/pkg/filters"
	"github.com/yaklabco/linguo/pkg/heuristics"
)

// ErrIncomplete is returned by New when a component is missing.
var ErrIncomplete = errors.New("detector component missing")

// Sources names data files that replace the embedded defaults. Empty fields
// keep the default for that component.
type Sources struct {
	Catalog    string
	Heuristics string
	Model      string
	Filters    string
}

// New builds a Detector from already loaded components. The heuristic rules
// are checked against the catalog.
func New(c Components, opts Options) (*Detector, error) {
	var missing []string
	if c.Catalog == nil {
		missing = append(missing, "catalog")
	}
	if c.Heuristics == nil {
		missing = append(missing, "heuristics")
	}
	if c.Model == nil {
		missing = append(missing, "model")
	}
	if c.Filters == nil {
		missing = append(missing, "filters")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrIncomplete, missing)
	}

	if err := c.Heuristics.Check(c.Catalog); err != nil {
		return nil, err
	}

	limit := opts.ContentLimit
	if limit <= 0 {
		limit = DefaultContentLimit
	}

	return &Detector{
		catalog:    c.Catalog,
		heuristics: c.Heuristics,
		model:      c.Model,
		filters:    c.Filters,
		limit:      limit,
		modelines:  !opts.DisableModelines,
	}, nil
}

// NewDefault builds a Detector from the data embedded in the binary.
func NewDefault(opts Options) (*Detector, error) {
	return Load(Sources{}, opts)
}

// Load builds a Detector, reading each component from its file in src or
// from the embedded default when the path is empty. Every component is
// loaded before any error is returned so that all problems are reported at
// once.
func Load(src Sources, opts Options) (*Detector, error) {
	var (
		c    Components
		errs []error
		err  error
	)

	if src.Catalog != "" {
		c.Catalog, err = catalog.LoadFile(src.Catalog)
	} else {
		c.Catalog, err = catalog.Default()
	}
	errs = append(errs, err)

	if src.Heuristics != "" {
		c.Heuristics, err = heuristics.LoadFile(src.Heuristics)
	} else {
		c.Heuristics, err = heuristics.Default()
	}
	errs = append(errs, err)

	if src.Model != "" {
		c.Model, err = classifier.ReadFile(src.Model)
	} else {
		c.Model, err = classifier.Default()
	}
	errs = append(errs, err)

	if src.Filters != "" {
		c.Filters, err = filters.LoadFile(src.Filters)
	} else {
		c.Filters, err = filters.Default()
	}
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return New(c, opts)
}
