package document

import (
	"errors"
	"io"

	"github.com/junioryono/beans"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Beans []beans.Declaration `yaml:"beans"`
}

// DecodeYAML reads a document with a top-level "beans" list. Unknown keys
// are rejected. An empty document declares no beans.
func DecodeYAML(r io.Reader) ([]beans.Declaration, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc yamlDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, &DocumentError{Cause: err}
	}

	return doc.Beans, nil
}
