package registry

import (
	"maps"

	"github.com/google/uuid"
)

// Record is an instance of a registry's record type. Records are never
// mutated once persisted by this subsystem; they are only linked to parents
// or features.
type Record struct {
	// UID is the stable record identifier, assigned at construction.
	UID string `yaml:"uid"`

	// Kind is the registry kind the record belongs to.
	Kind Kind `yaml:"kind"`

	// Attrs holds the record's typed attributes, e.g. name, symbol,
	// organism, type.
	Attrs map[string]string `yaml:"attrs"`

	// Feature optionally associates the record with the owning feature.
	Feature string `yaml:"feature,omitempty"`
}

// NewRecord creates a record of the given kind with a fresh UID.
func NewRecord(kind Kind, attrs map[string]string) *Record {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Record{
		UID:   uuid.NewString(),
		Kind:  kind,
		Attrs: attrs,
	}
}

// Value returns the record's value under the given field attribute.
func (r *Record) Value(field Field) string {
	return r.Attrs[field.Attr]
}

// Attr returns the named attribute, or "" if unset.
func (r *Record) Attr(name string) string {
	return r.Attrs[name]
}

// Clone returns a deep copy of the record. Stores copy on write so callers
// cannot alias persisted state.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Attrs = maps.Clone(r.Attrs)
	return &clone
}

// Values extracts the field values of the given records, in order.
func Values(records []*Record, field Field) []string {
	values := make([]string, 0, len(records))
	for _, r := range records {
		values = append(values, r.Value(field))
	}
	return values
}
