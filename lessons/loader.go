package lessons

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

//go:embed data/lessons.yaml
var defaultData []byte

// Default returns the built-in Greek–Russian dataset.
func Default() (*Catalog, error) {
	ls, err := Parse(defaultData)
	if err != nil {
		return nil, fmt.Errorf("built-in lessons: %w", err)
	}
	return NewCatalog(ls)
}

// Parse decodes a YAML or JSON lesson list.
func Parse(data []byte) ([]Lesson, error) {
	var ls []Lesson
	if err := yaml.Unmarshal(data, &ls); err != nil {
		return nil, fmt.Errorf("parse lessons: %w", err)
	}
	return ls, nil
}

// LoadFile reads a dataset file. An empty path selects the built-in dataset.
func LoadFile(fs afero.Fs, path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read lessons %s: %w", path, err)
	}
	ls, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c, err := NewCatalog(ls)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Encode writes lessons in the YAML dataset format.
func Encode(w io.Writer, ls []Lesson) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(ls); err != nil {
		return err
	}
	return enc.Close()
}
