package cmd

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/reference"
)

// vocabFile is the on-disk shape of a public reference vocabulary:
//
//	entries:
//	  - value: liver
//	    synonyms: [hepatic tissue]
type vocabFile struct {
	Entries []reference.Entry `yaml:"entries"`
}

// loadVocabulary reads a YAML vocabulary file for a registry kind.
func loadVocabulary(name, path string) (reference.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	var file vocabFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return reference.New(name, file.Entries...), nil
}
