package reconcile

import (
	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/registry"
)

// resolveViaUsing imports values that validate in the named secondary
// instance: it inspects the secondary registry with the same field and
// context, copies every record that validates there into the local
// registry, and returns the values unresolved even there.
//
// When no secondary instance is configured (or it is the local sentinel),
// the stage is a no-op and the input passes through unchanged. An unknown
// instance name propagates: silently degrading to local-only resolution
// would hide data-loss risk.
func (r *Reconciler) resolveViaUsing(result *Result, values []string, field registry.Field, local registry.Store, ctx registry.Context, o *options) ([]string, error) {
	if o.using == "" || o.using == registry.DefaultInstance {
		return values, nil
	}

	instance, err := r.instances.Get(o.using)
	if err != nil {
		return nil, err
	}
	remote, err := instance.Store(field.Kind)
	if err != nil {
		return nil, errors.WrapResource("resolve", field.Kind.String(), o.using, err)
	}

	inspected, err := remote.Inspect(values, field, ctx)
	if err != nil {
		return nil, err
	}
	if len(inspected.Validated) == 0 {
		return inspected.NonValidated, nil
	}

	records, err := remote.Filter(field, inspected.Validated, ctx)
	if err != nil {
		return nil, err
	}

	// Copy into the local registry. Save is an upsert, so repeating the
	// copy for the same logical value never double-inserts.
	stored, err := local.Save(records...)
	if err != nil {
		return nil, errors.WrapResource("copy", field.Kind.String(), o.using, err)
	}
	if stored == 0 && len(records) > 0 {
		return nil, errors.NewIntegrityError("copy", field.Kind.String(), len(records), stored)
	}

	result.FromUsing = registry.Values(records, field)
	return inspected.NonValidated, nil
}
