// Package reference provides public reference vocabularies: external
// canonical vocabularies (e.g. an ontology export) that registries use to
// construct records for values with no local or cross-instance match.
//
// Lookup is tolerant of surface variation: values are Unicode-normalized
// and case-folded, and entries may declare synonyms that map to their
// canonical value.
package reference

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Entry is one canonical vocabulary record.
type Entry struct {
	// Value is the canonical value, e.g. the ontology term name.
	Value string `yaml:"value"`

	// Synonyms are alternative spellings that resolve to Value.
	Synonyms []string `yaml:"synonyms,omitempty"`

	// Organism scopes the entry to one organism; "" means unscoped.
	Organism string `yaml:"organism,omitempty"`

	// Attrs are extra attributes carried onto constructed records,
	// e.g. an ontology identifier.
	Attrs map[string]string `yaml:"attrs,omitempty"`
}

// Vocabulary resolves raw values to canonical entries.
type Vocabulary interface {
	// Lookup resolves a raw value, honoring the organism context when the
	// vocabulary is organism-scoped. The second return reports whether
	// the value could be resolved.
	Lookup(value string, ctx map[string]string) (Entry, bool)

	// Name identifies the vocabulary in log output.
	Name() string
}

// vocabulary is the in-memory Vocabulary implementation.
type vocabulary struct {
	name  string
	index map[indexKey]Entry
}

type indexKey struct {
	value    string
	organism string
}

var fold = cases.Fold()

// normalize canonicalizes a raw value for index lookup: NFC then case fold.
func normalize(value string) string {
	return fold.String(norm.NFC.String(value))
}

// New creates an in-memory vocabulary from entries. Both the canonical
// value and every synonym are indexed.
func New(name string, entries ...Entry) Vocabulary {
	v := &vocabulary{
		name:  name,
		index: make(map[indexKey]Entry, len(entries)),
	}
	for _, entry := range entries {
		v.add(entry.Value, entry)
		for _, synonym := range entry.Synonyms {
			v.add(synonym, entry)
		}
	}
	return v
}

func (v *vocabulary) add(value string, entry Entry) {
	key := indexKey{value: normalize(value), organism: entry.Organism}
	// first writer wins so canonical values shadow colliding synonyms
	if _, ok := v.index[key]; !ok {
		v.index[key] = entry
	}
}

// Name implements Vocabulary.
func (v *vocabulary) Name() string {
	return v.name
}

// Lookup implements Vocabulary.
func (v *vocabulary) Lookup(value string, ctx map[string]string) (Entry, bool) {
	organism := ""
	if ctx != nil {
		organism = ctx["organism"]
	}
	normalized := normalize(value)
	if entry, ok := v.index[indexKey{value: normalized, organism: organism}]; ok {
		return entry, true
	}
	// unscoped entries match regardless of the supplied organism
	if organism != "" {
		if entry, ok := v.index[indexKey{value: normalized}]; ok {
			return entry, true
		}
	}
	return Entry{}, false
}
