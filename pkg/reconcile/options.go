package reconcile

import (
	"maps"

	"github.com/labelkit/labelkit/pkg/registry"
	"github.com/labelkit/labelkit/pkg/tabular"
)

// Option configures one reconciliation call.
type Option func(*options)

// options holds per-call configuration.
type options struct {
	using         string
	validatedOnly bool
	ctx           registry.Context
	attrs         map[string]string
	frame         *tabular.Frame
}

func newOptions(opts ...Option) *options {
	o := &options{
		validatedOnly: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithUsing names the secondary instance to consult before falling back to
// the public reference. Empty or "default" is a no-op.
func WithUsing(instance string) Option {
	return func(o *options) {
		o.using = instance
	}
}

// WithValidatedOnly controls whether values without any reference are
// materialized as placeholder records (false) or only reported (true).
// Defaults to true. A registry without a public reference always
// materializes placeholders regardless of this setting.
func WithValidatedOnly(validatedOnly bool) Option {
	return func(o *options) {
		o.validatedOnly = validatedOnly
	}
}

// WithContext supplies disambiguating lookup context, e.g. organism for
// organism-scoped registries.
func WithContext(ctx registry.Context) Option {
	return func(o *options) {
		o.ctx = maps.Clone(ctx)
	}
}

// WithOrganism is shorthand for organism context.
func WithOrganism(organism string) Option {
	return WithContext(registry.Organism(organism))
}

// WithAttrs supplies extra attributes set on placeholder records.
func WithAttrs(attrs map[string]string) Option {
	return func(o *options) {
		o.attrs = maps.Clone(attrs)
	}
}

// ContextOf resolves the lookup context a set of options carries, for
// callers that query stores with the same context as the reconciliation.
func ContextOf(opts ...Option) registry.Context {
	return newOptions(opts...).ctx
}

// WithFrame supplies the source frame for column-driven feature discovery.
// Only honored for the feature registry; see the placeholder registrar.
func WithFrame(frame *tabular.Frame) Option {
	return func(o *options) {
		o.frame = frame
	}
}
