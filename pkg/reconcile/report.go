package reconcile

import (
	"github.com/labelkit/labelkit/pkg/registry"
)

// report classifies the final partition into its named buckets and emits a
// human-readable summary. It is a side-effecting consumer of the resolution
// result, not part of the resolution contract, and runs only after the
// verbosity suppression window has closed.
func (r *Reconciler) report(result *Result, featureName string, validatedOnly bool) {
	recordsType := "labels"
	if featureName == "feature" {
		recordsType = "features"
	}
	modelField := result.Field.String()

	keys := []string{BucketFromUsing(result.Using), BucketFromPublic, BucketWithoutReference}
	buckets := result.Buckets()
	for _, key := range keys {
		values := buckets[key]
		if len(values) == 0 {
			continue
		}
		if key == BucketWithoutReference && validatedOnly {
			r.logger.Warn().
				Str("field", modelField).
				Str("feature", featureName).
				Strs("values", values).
				Msgf("%d non-validated %s are not registered with %s; to register, set validated_only=false", len(values), recordsType, modelField)
			continue
		}
		event := r.logger.Info().
			Str("field", modelField).
			Str("feature", featureName).
			Strs("values", values)
		if key == BucketWithoutReference {
			event.Msgf("registered %d %s with %s", len(values), recordsType, modelField)
			continue
		}
		event.Str("source", key).
			Msgf("registered %d %s %s with %s", len(values), recordsType, key, modelField)
	}

	if result.Parent != nil {
		r.logger.Debug().
			Str("parent", result.Parent.Value(registry.NewField(result.Field.Kind, registry.AttrName))).
			Str("feature", featureName).
			Msg("linked labels under parent label")
	}
}
