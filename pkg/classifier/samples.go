package classifier

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

//go:embed all:_samples
var embedded embed.FS

// Sample is one labeled training file.
type Sample struct {
	Language string
	Name     string
	Content  []byte
}

// Default trains a model on the samples embedded in the binary.
func Default() (*Model, error) {
	samples, err := DefaultSamples()
	if err != nil {
		return nil, err
	}
	return Train(samples)
}

// DefaultSamples returns the embedded training samples.
func DefaultSamples() ([]Sample, error) {
	sub, err := fs.Sub(embedded, "_samples")
	if err != nil {
		return nil, fmt.Errorf("open embedded samples: %w", err)
	}
	return LoadSamples(sub)
}

// LoadSamplesDir reads samples from a directory laid out as
// <dir>/<Language>/<file>.
func LoadSamplesDir(dir string) ([]Sample, error) {
	return LoadSamples(os.DirFS(dir))
}

// LoadSamples reads samples from fsys. Each top-level directory names a
// language; every regular file below it is a sample of that language. Files
// directly at the root are ignored.
func LoadSamples(fsys fs.FS) ([]Sample, error) {
	var samples []Sample
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		lang, _, nested := strings.Cut(p, "/")
		if !nested {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read sample %s: %w", p, err)
		}
		samples = append(samples, Sample{Language: lang, Name: path.Base(p), Content: content})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load samples: %w", err)
	}
	return samples, nil
}
