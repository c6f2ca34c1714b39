package reconcile

import (
	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/registry"
)

// resolveFromReference constructs canonical records for the remaining
// unresolved values from the public reference vocabulary bound to the
// field's registry kind, bulk-saves them, and splits the input into the
// from-public and without-reference buckets.
//
// The stage is skipped entirely on empty input, so reconciling twice with
// no new values performs zero writes.
func (r *Reconciler) resolveFromReference(result *Result, values []string, field registry.Field, store registry.Store, ctx registry.Context) error {
	if len(values) == 0 {
		return nil
	}

	records, err := store.FromValues(values, field, ctx)
	if err != nil {
		return err
	}
	if len(records) > 0 {
		stored, err := store.Save(records...)
		if err != nil {
			return errors.WrapResource("save", field.Kind.String(), "", err)
		}
		if stored == 0 {
			// The backing registry rejected the writes silently.
			return errors.NewIntegrityError("save", field.Kind.String(), len(records), stored)
		}
	}

	result.FromPublic = registry.Values(records, field)
	result.WithoutReference = subtract(values, result.FromPublic)
	return nil
}
