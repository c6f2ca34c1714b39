package reconcile

import (
	"github.com/labelkit/labelkit/pkg/registry"
)

// Bucket keys of the resolution partition. The from-using key is rendered
// per call via BucketFromUsing.
const (
	BucketFromPublic       = "from public"
	BucketWithoutReference = "without reference"
)

// BucketFromUsing renders the bucket key for values imported from a named
// secondary instance.
func BucketFromUsing(using string) string {
	return "from " + using
}

// Result is the structured outcome of one reconciliation call: the
// validated set plus the resolution partition of the initially unresolved
// values. The three partition buckets are disjoint and their union equals
// the unresolved set exactly.
type Result struct {
	// Field is the join field the call reconciled against.
	Field registry.Field

	// Using is the secondary instance consulted, or "" if none.
	Using string

	// Validated holds the values already present in the local registry.
	Validated []string

	// FromUsing holds the values copied from the secondary instance.
	FromUsing []string

	// FromPublic holds the values constructed from the public reference.
	FromPublic []string

	// WithoutReference holds the values with no reference anywhere.
	WithoutReference []string

	// Parent is the is_<feature> parent label, when one was linked.
	Parent *registry.Record
}

func newResult(field registry.Field, using string) *Result {
	return &Result{
		Field:            field,
		Using:            using,
		Validated:        []string{},
		FromUsing:        []string{},
		FromPublic:       []string{},
		WithoutReference: []string{},
	}
}

// Buckets returns the resolution partition keyed by bucket name. Keys are
// fixed per call; the from-using bucket is present only when a secondary
// instance was consulted.
func (r *Result) Buckets() map[string][]string {
	buckets := map[string][]string{
		BucketFromPublic:       r.FromPublic,
		BucketWithoutReference: r.WithoutReference,
	}
	if r.Using != "" {
		buckets[BucketFromUsing(r.Using)] = r.FromUsing
	}
	return buckets
}

// FullyValidated reports whether every input value was already present in
// the local registry, i.e. the call was a no-op.
func (r *Result) FullyValidated() bool {
	return len(r.FromUsing) == 0 && len(r.FromPublic) == 0 && len(r.WithoutReference) == 0
}
