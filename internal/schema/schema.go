// Package schema validates YAML data files against JSON schemas.
package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// Error lists the schema violations found in a data file.
type Error struct {
	Schema string
	Errors []string
}

func (e *Error) Error() string {
	switch len(e.Errors) {
	case 0:
		return e.Schema + ": validation failed"
	case 1:
		return fmt.Sprintf("%s: validation failed: %s", e.Schema, e.Errors[0])
	default:
		return fmt.Sprintf("%s: validation failed: %s", e.Schema, strings.Join(e.Errors, "; "))
	}
}

//nolint:gochecknoglobals // compiled schemas are immutable once built
var (
	compiledMu sync.Mutex
	compiled   = map[string]*jsonschema.Schema{}
)

func compile(name, source string) (*jsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	s, err := jsonschema.CompileString(name, source)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	compiled[name] = s
	return s, nil
}

// ValidateYAML parses content as YAML and validates it against the schema
// source registered under name.
func ValidateYAML(name, source string, content []byte) error {
	var data any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	return Validate(name, source, data)
}

// Validate checks an already decoded document.
func Validate(name, source string, data any) error {
	s, err := compile(name, source)
	if err != nil {
		return err
	}

	err = s.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Error{Schema: name, Errors: []string{err.Error()}}
	}

	out := &Error{Schema: name}
	collect(verr, &out.Errors)
	return out
}

// collect flattens the cause tree into leaf messages.
func collect(verr *jsonschema.ValidationError, into *[]string) {
	if len(verr.Causes) == 0 {
		loc := verr.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*into = append(*into, fmt.Sprintf("%s: %s", loc, verr.Message))
		return
	}
	for _, cause := range verr.Causes {
		collect(cause, into)
	}
}
