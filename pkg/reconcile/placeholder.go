package reconcile

import (
	"maps"
	"strconv"

	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/registry"
	"github.com/labelkit/labelkit/pkg/tabular"
)

// Categorical type tags assigned to placeholder features.
const (
	featureTypeCategory = "category"
	featureTypeNumber   = "number"
)

// createPlaceholders materializes minimal local records for values with no
// reference anywhere. Two modes:
//
// Generic: one record per without-reference value, carrying the caller's
// extra attributes plus a fixed "category" type tag for the feature
// registry.
//
// Frame-derived (feature registry with a source frame): feature discovery
// is column-driven, so the without-reference bucket is recomputed as the
// frame's columns not accounted for by the preceding stages, and only those
// columns materialize as placeholder records. Columns resolved earlier in
// the call keep their persisted records untouched. The frame overrides the
// generic path; the two are never mixed.
func (r *Reconciler) createPlaceholders(result *Result, field registry.Field, store registry.Store, o *options) error {
	if o.frame != nil && field.Kind == registry.KindFeature {
		return r.placeholdersFromFrame(result, field, store, o.frame)
	}

	if len(result.WithoutReference) == 0 {
		return nil
	}
	records := make([]*registry.Record, 0, len(result.WithoutReference))
	for _, value := range result.WithoutReference {
		attrs := maps.Clone(o.attrs)
		if attrs == nil {
			attrs = make(map[string]string, 2)
		}
		attrs[field.Attr] = value
		if field.Kind == registry.KindFeature {
			attrs[registry.AttrType] = featureTypeCategory
		}
		records = append(records, registry.NewRecord(field.Kind, attrs))
	}
	return savePlaceholders(store, field, records)
}

// placeholdersFromFrame recomputes the without-reference bucket from the
// frame's column labels and derives placeholder records for exactly those
// columns. Columns validated locally or resolved from the secondary
// instance or the public reference are excluded before any record is
// constructed, so their persisted records are never displaced.
func (r *Reconciler) placeholdersFromFrame(result *Result, field registry.Field, store registry.Store, frame *tabular.Frame) error {
	accounted := make([]string, 0, len(result.Validated)+len(result.FromUsing)+len(result.FromPublic))
	accounted = append(accounted, result.Validated...)
	accounted = append(accounted, result.FromUsing...)
	accounted = append(accounted, result.FromPublic...)
	result.WithoutReference = subtract(frame.Columns(), accounted)
	if len(result.WithoutReference) == 0 {
		return nil
	}
	return savePlaceholders(store, field, featureRecords(frame, result.WithoutReference))
}

func savePlaceholders(store registry.Store, field registry.Field, records []*registry.Record) error {
	if len(records) == 0 {
		return nil
	}
	stored, err := store.Save(records...)
	if err != nil {
		return errors.WrapResource("save", field.Kind.String(), "", err)
	}
	if stored == 0 {
		return errors.NewIntegrityError("save", field.Kind.String(), len(records), stored)
	}
	return nil
}

// FeaturesFromFrame constructs one feature record per frame column, with
// the type tag inferred from the column's values.
func FeaturesFromFrame(frame *tabular.Frame) []*registry.Record {
	return featureRecords(frame, frame.Columns())
}

func featureRecords(frame *tabular.Frame, columns []string) []*registry.Record {
	records := make([]*registry.Record, 0, len(columns))
	for _, column := range columns {
		values, _ := frame.Column(column)
		records = append(records, registry.NewRecord(registry.KindFeature, map[string]string{
			registry.AttrName: column,
			registry.AttrType: inferColumnType(values),
		}))
	}
	return records
}

// inferColumnType tags a column as numeric when every non-empty value
// parses as a number, categorical otherwise.
func inferColumnType(values []string) string {
	sawValue := false
	for _, v := range values {
		if v == "" {
			continue
		}
		sawValue = true
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return featureTypeCategory
		}
	}
	if !sawValue {
		return featureTypeCategory
	}
	return featureTypeNumber
}
