// Package artifact registers tabular and annotated-matrix datasets: it
// persists an artifact record, reconciles the dataset's variables or
// columns against the feature registry, and reconciles each configured
// observation column against its label field, linking the resulting
// records to the artifact.
package artifact

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/logging"
	"github.com/labelkit/labelkit/pkg/reconcile"
	"github.com/labelkit/labelkit/pkg/registry"
	"github.com/labelkit/labelkit/pkg/tabular"
)

// Attributes persisted on artifact records.
const (
	AttrDescription   = "description"
	AttrNObservations = "n_observations"
)

// Registrar registers artifacts against the local instance.
type Registrar struct {
	instances  *registry.Instances
	reconciler *reconcile.Reconciler
	logger     *zerolog.Logger
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the registrar's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(g *Registrar) {
		g.logger = logger
	}
}

// New creates a Registrar over the given instances. The reconciler it runs
// reports through the registrar's logger.
func New(instances *registry.Instances, opts ...Option) *Registrar {
	g := &Registrar{
		instances: instances,
		logger:    logging.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.reconciler = reconcile.New(instances, reconcile.WithLogger(g.logger))
	return g
}

// Registration is the outcome of registering one artifact.
type Registration struct {
	// Artifact is the persisted artifact record.
	Artifact *registry.Record

	// Features is the reconciliation result for the dataset's variable
	// labels (matrix) or column labels (frame) against the feature field.
	Features *reconcile.Result

	// Labels maps each reconciled observation column to the label records
	// linked to the artifact under it.
	Labels map[string][]*registry.Record
}

// Register registers a dataset with the local instance. data must be a
// *tabular.Frame or a *tabular.Matrix; anything else is an input-shape
// error and nothing is written. fields maps observation columns to the
// label fields they validate against; featureField is the field the
// variable or column labels validate against.
func (g *Registrar) Register(data any, description string, fields map[string]registry.Field, featureField registry.Field, opts ...reconcile.Option) (*Registration, error) {
	var (
		obs      *tabular.Frame
		varNames []string
		frame    *tabular.Frame
		nObs     int
	)
	switch d := data.(type) {
	case *tabular.Matrix:
		obs = d.Obs()
		varNames = d.Vars()
		nObs = d.NObs()
	case *tabular.Frame:
		obs = d
		varNames = d.Columns()
		frame = d
	default:
		return nil, errors.NewInputShapeError("register artifact",
			fmt.Sprintf("%T", data), "*tabular.Frame or *tabular.Matrix")
	}

	record, err := g.saveArtifact(description, data, nObs)
	if err != nil {
		return nil, err
	}

	featureOpts := opts
	if frame != nil {
		featureOpts = append(featureOpts, reconcile.WithFrame(frame))
	}
	features, err := g.reconciler.Reconcile(varNames, featureField, "feature", featureOpts...)
	if err != nil {
		return nil, err
	}

	registration := &Registration{
		Artifact: record,
		Features: features,
		Labels:   make(map[string][]*registry.Record, len(fields)),
	}

	local, err := g.instances.Default()
	if err != nil {
		return nil, err
	}
	ctx := reconcile.ContextOf(opts...)
	for column, field := range fields {
		values, ok := obs.Column(column)
		if !ok {
			return nil, errors.NewValidationError(column, nil, "observation column not present in data")
		}
		if _, err := g.reconciler.Reconcile(values, field, column, opts...); err != nil {
			return nil, err
		}
		store, err := local.Store(field.Kind)
		if err != nil {
			return nil, err
		}
		// look up with the same narrowed context the reconciliation used,
		// so scoped registries link the right organism's records
		fieldCtx, err := reconcile.EffectiveContext(field.Kind, ctx)
		if err != nil {
			return nil, err
		}
		labels, err := store.Filter(field, values, fieldCtx)
		if err != nil {
			return nil, err
		}
		registration.Labels[column] = labels
	}

	g.logRegistered(local, record)
	return registration, nil
}

// saveArtifact persists the artifact record.
func (g *Registrar) saveArtifact(description string, data any, nObs int) (*registry.Record, error) {
	local, err := g.instances.Default()
	if err != nil {
		return nil, err
	}
	store, err := local.Store(registry.KindArtifact)
	if err != nil {
		return nil, err
	}

	attrs := map[string]string{
		registry.AttrName: description,
		AttrDescription:   description,
	}
	if _, ok := data.(*tabular.Matrix); ok {
		attrs[AttrNObservations] = strconv.Itoa(nObs)
	}
	record := registry.NewRecord(registry.KindArtifact, attrs)
	stored, err := store.Save(record)
	if err != nil {
		return nil, errors.WrapResource("save", "artifact", description, err)
	}
	if stored == 0 {
		return nil, errors.NewIntegrityError("save", "artifact", 1, stored)
	}
	return record, nil
}

// logRegistered reports the registered artifact, with a hub link for
// hosted instances.
func (g *Registrar) logRegistered(local *registry.Instance, record *registry.Record) {
	g.logger.Info().
		Str("instance", local.Name()).
		Str("uid", record.UID).
		Msgf("registered artifact in %s", local.Name())
	if local.Remote() {
		g.logger.Info().Msgf("%s/artifact/%s", local.URL(), record.UID)
	}
}
