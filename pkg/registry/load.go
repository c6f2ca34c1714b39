package registry

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/labelkit/labelkit/pkg/errors"
)

// seedFile is the on-disk shape of a registry seed document:
//
//	kind: label
//	records:
//	  - name: liver
//	  - name: heart
type seedFile struct {
	Kind    Kind                `yaml:"kind"`
	Records []map[string]string `yaml:"records"`
}

// ParseSeed parses a YAML seed document into fresh records of its kind.
func ParseSeed(data []byte) (Kind, []*Record, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return "", nil, errors.WrapParse("yaml", "", err)
	}
	if seed.Kind == "" {
		return "", nil, errors.NewValidationError("kind", seed.Kind, "seed document missing registry kind")
	}
	records := make([]*Record, 0, len(seed.Records))
	for _, attrs := range seed.Records {
		records = append(records, NewRecord(seed.Kind, attrs))
	}
	return seed.Kind, records, nil
}

// LoadSeed reads a YAML seed file and saves its records into the matching
// store of the instance.
func LoadSeed(inst *Instance, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapIO("read", path, err)
	}
	kind, records, err := ParseSeed(data)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	store, err := inst.Store(kind)
	if err != nil {
		return err
	}
	if _, err := store.Save(records...); err != nil {
		return errors.WrapResource("save", kind.String(), "", err)
	}
	return nil
}

// MarshalRecords renders records as YAML, used by the CLI to print lookup
// and reconciliation output.
func MarshalRecords(records []*Record) ([]byte, error) {
	return yaml.MarshalWithOptions(records, yaml.Indent(2))
}
