package registry

import "fmt"

// Canonical attribute names.
const (
	// AttrName is the display-name attribute present on every record kind.
	AttrName = "name"

	// AttrSymbol is the gene symbol attribute.
	AttrSymbol = "symbol"

	// AttrType is the categorical type tag set on placeholder features.
	AttrType = "type"
)

// Field is the (registry kind, attribute name) pair used as the join key
// for validation, e.g. "label by name" or "gene by symbol". It is immutable
// for the duration of a reconciliation call.
type Field struct {
	Kind Kind
	Attr string
}

// NewField creates a field descriptor.
func NewField(kind Kind, attr string) Field {
	return Field{Kind: kind, Attr: attr}
}

// LabelByName is the default field for the label registry.
func LabelByName() Field {
	return NewField(KindLabel, AttrName)
}

// FeatureByName is the default field for the feature registry.
func FeatureByName() Field {
	return NewField(KindFeature, AttrName)
}

// GeneBySymbol is the default field for the gene registry.
func GeneBySymbol() Field {
	return NewField(KindGene, AttrSymbol)
}

// String renders the field as "Kind.attr", e.g. "Label.name".
func (f Field) String() string {
	return fmt.Sprintf("%s.%s", f.Kind.Title(), f.Attr)
}

// Zero reports whether the field descriptor is empty.
func (f Field) Zero() bool {
	return f.Kind == "" && f.Attr == ""
}
