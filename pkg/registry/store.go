package registry

// Context carries disambiguating lookup context, e.g. organism for
// organism-scoped registries. Keys are matched against record attributes.
type Context map[string]string

// Organism is a convenience constructor for organism context.
func Organism(name string) Context {
	if name == "" {
		return nil
	}
	return Context{ContextKeyOrganism: name}
}

// Inspector partitions raw values by set membership under a field.
type Inspector interface {
	// Inspect partitions the distinct input values into validated and
	// non-validated under the given field. Read-only and silent.
	Inspect(values []string, field Field, ctx Context) (*InspectionResult, error)
}

// Filterer provides bulk lookup of records.
type Filterer interface {
	// Filter returns the records whose field value is in values,
	// preserving input order. Values with no record are skipped.
	Filter(field Field, values []string, ctx Context) ([]*Record, error)

	// Get returns the record for a single field value, if present.
	Get(field Field, value string, ctx Context) (*Record, bool)
}

// Saver persists records with upsert semantics: saving a record whose field
// value already exists replaces the stored record instead of inserting a
// duplicate, so repeating a save for the same logical value is safe.
type Saver interface {
	// Save upserts the given records and returns how many are persisted
	// afterwards. Callers that expect at least one stored record treat a
	// zero return as an integrity violation.
	Save(records ...*Record) (int, error)
}

// Referencer constructs canonical records from the public reference
// vocabulary bound to the store's kind.
type Referencer interface {
	// FromValues materializes a record per value: an existing record when
	// the value is already present under the field, otherwise a new
	// unsaved record constructed from the public reference. Values with
	// neither are absent from the result.
	FromValues(values []string, field Field, ctx Context) ([]*Record, error)

	// HasReference reports whether a public reference vocabulary is bound
	// to this store's kind.
	HasReference() bool
}

// Hierarchy is the parent/child adjacency relation for kinds that support
// hierarchical grouping. Adding an already-linked child is a no-op.
type Hierarchy interface {
	AddChildren(parent *Record, children ...*Record) error
	Children(parent *Record) ([]*Record, error)
}

// Store is the full registry access capability for one kind: membership
// inspection, bulk lookup, upsert persistence, public-reference
// construction, and (for the hierarchy-capable kind) adjacency.
type Store interface {
	Inspector
	Filterer
	Saver
	Referencer
	Hierarchy

	// Kind returns the registry kind this store holds.
	Kind() Kind

	// Len returns the number of persisted records.
	Len() int
}
