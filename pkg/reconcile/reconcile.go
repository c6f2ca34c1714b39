// Package reconcile implements the label reconciliation engine: it takes a
// set of raw categorical values, reconciles them against typed registries,
// and partitions the input into values that are already known, importable
// from a secondary instance, importable from the public reference, or
// unresolvable. Resolvable values are persisted exactly once; for the label
// registry a parent label groups everything used under a feature.
//
// The flow is a fixed state machine:
//
//	LOCAL_INSPECT -> (done if fully validated) -> CROSS_INSTANCE ->
//	PUBLIC_REFERENCE -> PLACEHOLDER (optional) -> HIERARCHY_LINK (optional)
//	-> REPORT
//
// Any persistence failure is fatal and propagates; nothing is retried. The
// process-wide verbosity is suppressed for the duration of a call and
// restored on every exit path.
//
// The engine assumes a single synchronous caller. Deployments that add
// concurrency must provide their own mutual exclusion per
// (registry, field, feature) key.
package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/logging"
	"github.com/labelkit/labelkit/pkg/registry"
)

// Reconciler reconciles raw values against the registries of an instance
// container. The local instance is resolved under registry.DefaultInstance.
type Reconciler struct {
	instances *registry.Instances
	logger    *zerolog.Logger
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLogger sets the logger used by the outcome reporter.
func WithLogger(logger *zerolog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// New creates a Reconciler over the given instances.
func New(instances *registry.Instances, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		instances: instances,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile reconciles values against the local registry for the field,
// falling back to the secondary instance and the public reference, and
// returns the resolution partition. featureName names the feature the
// values are used under; for the label registry it determines the
// is_<feature> parent label.
func (r *Reconciler) Reconcile(values []string, field registry.Field, featureName string, opts ...Option) (*Result, error) {
	o := newOptions(opts...)

	local, err := r.instances.Default()
	if err != nil {
		return nil, err
	}
	store, err := local.Store(field.Kind)
	if err != nil {
		return nil, err
	}

	// A registry without a public reference cannot distinguish
	// "unvalidated" from "unknown": placeholders are always created.
	validatedOnly := o.validatedOnly
	if !store.HasReference() {
		validatedOnly = false
	}

	ctx, err := EffectiveContext(field.Kind, o.ctx)
	if err != nil {
		return nil, err
	}

	// Suppress nested chatty operations for the reconciliation window.
	// The restore must run on every exit path.
	restore := logging.Suppress()
	defer restore()

	inspected, err := store.Inspect(values, field, ctx)
	if err != nil {
		return nil, err
	}

	result := newResult(field, o.using)
	result.Validated = inspected.Validated
	if inspected.AllValidated() {
		// Nothing to register; no cross-instance, public, placeholder,
		// or hierarchy stage runs.
		return result, nil
	}

	remainder, err := r.resolveViaUsing(result, inspected.NonValidated, field, store, ctx, o)
	if err != nil {
		return nil, err
	}

	if err := r.resolveFromReference(result, remainder, field, store, ctx); err != nil {
		return nil, err
	}

	if !validatedOnly {
		if err := r.createPlaceholders(result, field, store, o); err != nil {
			return nil, err
		}
	}

	if field.Kind.SupportsHierarchy() && field.Attr == registry.AttrName {
		parent, err := r.linkParent(store, values, field, featureName)
		if err != nil {
			return nil, err
		}
		result.Parent = parent
	}

	restore()
	r.report(result, featureName, validatedOnly)
	return result, nil
}

// EffectiveContext validates and narrows the supplied context to what the
// registry kind requires. Kinds without a context requirement get nil; a
// required key that is missing fails before any store round trip. Callers
// that look up records after a reconciliation pass the same narrowed
// context so scoped registries resolve the same records.
func EffectiveContext(kind registry.Kind, ctx registry.Context) (registry.Context, error) {
	key, required := kind.RequiresContext()
	if !required {
		return nil, nil
	}
	value, ok := ctx[key]
	if !ok || value == "" {
		return nil, errors.NewMissingContextError(kind.String(), key)
	}
	return registry.Context{key: value}, nil
}

// subtract returns the values not present in exclude, preserving order.
func subtract(values []string, exclude []string) []string {
	drop := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		drop[v] = struct{}{}
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := drop[v]; !ok {
			out = append(out, v)
		}
	}
	return out
}
