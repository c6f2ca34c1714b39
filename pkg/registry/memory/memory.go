// Package memory provides the in-memory registry store implementation.
// It enforces per-field uniqueness, supports upsert persistence, and keeps
// a parent/child adjacency relation for hierarchy-capable kinds.
//
// Stores deep-copy records on write and on read, so callers never alias
// persisted state.
package memory

import (
	"sync"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/reference"
	"github.com/labelkit/labelkit/pkg/registry"
)

// Compile-time interface check.
var _ registry.Store = (*Store)(nil)

// Store is a mutex-guarded in-memory registry store for one kind.
type Store struct {
	mu       sync.RWMutex
	kind     registry.Kind
	readOnly bool
	vocab    reference.Vocabulary

	records  map[string]*registry.Record        // by UID
	identity map[string]string                  // identity key -> UID
	children map[string]map[string]struct{}     // parent UID -> child UID set
	writes   int64
}

// Option configures a Store.
type Option func(*Store)

// WithVocabulary binds a public reference vocabulary to the store.
func WithVocabulary(vocab reference.Vocabulary) Option {
	return func(s *Store) {
		s.vocab = vocab
	}
}

// WithReadOnly makes every mutation fail with errors.ErrReadOnly.
func WithReadOnly() Option {
	return func(s *Store) {
		s.readOnly = true
	}
}

// New creates an empty store for the given kind.
func New(kind registry.Kind, opts ...Option) *Store {
	s := &Store{
		kind:     kind,
		records:  make(map[string]*registry.Record),
		identity: make(map[string]string),
		children: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed creates a store pre-populated with records built from attribute maps.
func Seed(kind registry.Kind, attrs []map[string]string, opts ...Option) *Store {
	s := New(kind, opts...)
	for _, a := range attrs {
		if _, err := s.Save(registry.NewRecord(kind, a)); err != nil {
			// Seeding bad fixtures is a programming error in tests/setup.
			panic(err)
		}
	}
	return s
}

// Kind implements registry.Store.
func (s *Store) Kind() registry.Kind {
	return s.kind
}

// HasReference implements registry.Referencer.
func (s *Store) HasReference() bool {
	return s.vocab != nil
}

// Len implements registry.Store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Writes returns the number of record writes performed over the store's
// lifetime. Used to observe idempotence from tests and diagnostics.
func (s *Store) Writes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// identityField returns the field whose value identifies a record of this
// store's kind. Uniqueness is enforced on it.
func (s *Store) identityField() registry.Field {
	if s.kind == registry.KindGene {
		return registry.GeneBySymbol()
	}
	return registry.NewField(s.kind, registry.AttrName)
}

// identityKey computes the uniqueness key of a record: the identity attr
// value, scoped by organism for context-sensitive kinds.
func (s *Store) identityKey(rec *registry.Record) (string, error) {
	value := rec.Value(s.identityField())
	if value == "" {
		return "", errors.NewValidationError(s.identityField().Attr, "", "record has no identity value")
	}
	if key, ok := s.kind.RequiresContext(); ok {
		return value + "\x00" + rec.Attr(key), nil
	}
	return value, nil
}

func (s *Store) checkField(field registry.Field) error {
	if field.Kind != s.kind {
		return errors.NewValidationError("field", field.String(),
			"field kind does not match store kind "+s.kind.String())
	}
	return nil
}

// matches reports whether a record carries the given value under the field
// and satisfies every context constraint.
func matches(rec *registry.Record, field registry.Field, value string, ctx registry.Context) bool {
	if rec.Value(field) != value {
		return false
	}
	for key, want := range ctx {
		if rec.Attr(key) != want {
			return false
		}
	}
	return true
}

// lookup finds the stored record for a field value. Caller holds the lock.
func (s *Store) lookup(field registry.Field, value string, ctx registry.Context) (*registry.Record, bool) {
	for _, rec := range s.records {
		if matches(rec, field, value, ctx) {
			return rec, true
		}
	}
	return nil, false
}

// Inspect implements registry.Inspector. Duplicates are coalesced; the
// result partitions the set of distinct values exactly.
func (s *Store) Inspect(values []string, field registry.Field, ctx registry.Context) (*registry.InspectionResult, error) {
	if err := s.checkField(field); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := &registry.InspectionResult{
		Validated:    []string{},
		NonValidated: []string{},
	}
	for _, value := range registry.Distinct(values) {
		if _, ok := s.lookup(field, value, ctx); ok {
			result.Validated = append(result.Validated, value)
		} else {
			result.NonValidated = append(result.NonValidated, value)
		}
	}
	return result, nil
}

// Get implements registry.Filterer.
func (s *Store) Get(field registry.Field, value string, ctx registry.Context) (*registry.Record, bool) {
	if err := s.checkField(field); err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.lookup(field, value, ctx)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// Filter implements registry.Filterer. Input order is preserved; values
// without a record are skipped.
func (s *Store) Filter(field registry.Field, values []string, ctx registry.Context) ([]*registry.Record, error) {
	if err := s.checkField(field); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*registry.Record, 0, len(values))
	for _, value := range registry.Distinct(values) {
		if rec, ok := s.lookup(field, value, ctx); ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// Save implements registry.Saver with upsert semantics: a record whose
// identity value is already stored replaces the stored record, so repeating
// a save for the same logical value never inserts a duplicate.
func (s *Store) Save(records ...*registry.Record) (int, error) {
	if s.readOnly {
		return 0, errors.WrapResource("save", s.kind.String(), "", errors.ErrReadOnly)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := 0
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if rec.Kind != s.kind {
			return stored, errors.NewValidationError("kind", rec.Kind.String(),
				"record kind does not match store kind "+s.kind.String())
		}
		key, err := s.identityKey(rec)
		if err != nil {
			return stored, err
		}
		if priorUID, ok := s.identity[key]; ok && priorUID != rec.UID {
			// upsert: drop the displaced record and carry its links over
			if links, linked := s.children[priorUID]; linked {
				s.children[rec.UID] = links
				delete(s.children, priorUID)
			}
			s.relinkChild(priorUID, rec.UID)
			delete(s.records, priorUID)
		}
		s.records[rec.UID] = rec.Clone()
		s.identity[key] = rec.UID
		s.writes++
		stored++
	}
	return stored, nil
}

// relinkChild rewrites child links after an upsert replaced a record's UID.
// Caller holds the lock.
func (s *Store) relinkChild(oldUID, newUID string) {
	for parent, set := range s.children {
		if _, ok := set[oldUID]; ok {
			delete(set, oldUID)
			set[newUID] = struct{}{}
			s.children[parent] = set
		}
	}
}

// FromValues implements registry.Referencer. Each distinct value
// materializes as the existing stored record when present, otherwise as a
// new unsaved record constructed from the public reference vocabulary.
// Values with neither are absent from the result.
//
// Constructed records keep the raw queried value under the field attribute
// so the caller's partition arithmetic stays exact; the vocabulary's
// canonical value and extra attributes ride along as plain attributes.
func (s *Store) FromValues(values []string, field registry.Field, ctx registry.Context) ([]*registry.Record, error) {
	if err := s.checkField(field); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*registry.Record, 0, len(values))
	for _, value := range registry.Distinct(values) {
		if rec, ok := s.lookup(field, value, ctx); ok {
			out = append(out, rec.Clone())
			continue
		}
		if s.vocab == nil {
			continue
		}
		entry, ok := s.vocab.Lookup(value, ctx)
		if !ok {
			continue
		}
		attrs := map[string]string{field.Attr: value}
		for k, v := range entry.Attrs {
			if _, taken := attrs[k]; !taken {
				attrs[k] = v
			}
		}
		if entry.Value != value {
			attrs["canonical"] = entry.Value
		}
		if key, needs := s.kind.RequiresContext(); needs {
			attrs[key] = ctx[key]
		}
		out = append(out, registry.NewRecord(s.kind, attrs))
	}
	return out, nil
}

// AddChildren implements registry.Hierarchy. Both parent and children must
// be persisted. Adding an already-linked child is a no-op.
func (s *Store) AddChildren(parent *registry.Record, children ...*registry.Record) error {
	if !s.kind.SupportsHierarchy() {
		return errors.NewValidationError("kind", s.kind.String(), "registry does not support hierarchical grouping")
	}
	if s.readOnly {
		return errors.WrapResource("link", s.kind.String(), "", errors.ErrReadOnly)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[parent.UID]; !ok {
		return errors.NewNotFoundError("parent "+s.kind.String(), parent.Value(s.identityField()))
	}
	set, ok := s.children[parent.UID]
	if !ok {
		set = make(map[string]struct{})
		s.children[parent.UID] = set
	}
	for _, child := range children {
		if child == nil {
			continue
		}
		if _, ok := s.records[child.UID]; !ok {
			return errors.NewNotFoundError("child "+s.kind.String(), child.Value(s.identityField()))
		}
		set[child.UID] = struct{}{}
	}
	return nil
}

// Children implements registry.Hierarchy.
func (s *Store) Children(parent *registry.Record) ([]*registry.Record, error) {
	if !s.kind.SupportsHierarchy() {
		return nil, errors.NewValidationError("kind", s.kind.String(), "registry does not support hierarchical grouping")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.children[parent.UID]
	out := make([]*registry.Record, 0, len(set))
	for uid := range set {
		if rec, ok := s.records[uid]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}
