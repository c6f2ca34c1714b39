// Package registry defines the typed registry data model for labelkit:
// registry kinds, fields, records, inspection results, and the store and
// instance interfaces the reconciliation engine consumes.
//
// A registry is a typed, named collection of canonical records addressable
// by an instance identifier. Each (registry, field) pair maps a raw value to
// at most one canonical record.
package registry

// Kind identifies a registry type.
type Kind string

// Registry kinds known to the system.
const (
	// KindLabel is the free-form label registry. It supports hierarchical
	// grouping via a parent/child adjacency relation.
	KindLabel Kind = "label"

	// KindFeature is the feature registry. Feature discovery is
	// column-driven when a source frame is available.
	KindFeature Kind = "feature"

	// KindGene is the gene registry. It is organism-scoped: lookups
	// require organism context.
	KindGene Kind = "gene"

	// KindArtifact is the artifact registry for registered datasets.
	KindArtifact Kind = "artifact"
)

// String returns the string representation of a registry kind.
func (k Kind) String() string {
	return string(k)
}

// Title returns the capitalized record type name used in log output,
// e.g. "Label" for the label kind.
func (k Kind) Title() string {
	s := string(k)
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// ContextKeyOrganism is the context key for organism-scoped registries.
const ContextKeyOrganism = "organism"

// RequiresContext reports whether the kind needs disambiguating context
// before it can be queried, and which context key is required.
func (k Kind) RequiresContext() (string, bool) {
	if k == KindGene {
		return ContextKeyOrganism, true
	}
	return "", false
}

// SupportsHierarchy reports whether records of this kind participate in a
// parent/child adjacency relation. The orchestrator queries this trait
// instead of testing kind identity.
func (k Kind) SupportsHierarchy() bool {
	return k == KindLabel
}

// Kinds returns all registry kinds.
func Kinds() []Kind {
	return []Kind{KindLabel, KindFeature, KindGene, KindArtifact}
}
