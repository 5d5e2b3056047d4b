package textstore

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLLoader reads a flat YAML mapping of identifier to string.
type YAMLLoader struct{}

func NewYAMLLoader() *YAMLLoader { return &YAMLLoader{} }

func (l *YAMLLoader) CanLoad(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func (l *YAMLLoader) Decode(r io.Reader) (*Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read yaml: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return New(), nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("yaml text store must be a mapping")
	}

	var entries []Entry
	skipped := 0
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode || val.Tag == "!!null" {
			skipped++
			continue
		}
		entries = append(entries, Entry{ID: key.Value, Text: val.Value})
	}

	store := New(entries...)
	store.dropped += skipped
	return store, nil
}
