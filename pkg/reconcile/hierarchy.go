package reconcile

import (
	"github.com/labelkit/labelkit/pkg/errors"
	"github.com/labelkit/labelkit/pkg/registry"
)

// ParentPrefix prefixes the synthetic parent label grouping all labels
// used under a feature.
const ParentPrefix = "is_"

// ParentName renders the parent label name for a feature.
func ParentName(featureName string) string {
	return ParentPrefix + featureName
}

// linkParent maintains the hierarchical grouping between a feature and the
// labels used under it: it looks up the is_<feature> parent label, creates
// it once if absent, and links every persisted record for the input values
// as a child. Re-linking an already-linked child is a no-op, so repeated
// calls converge on one parent with the same children.
func (r *Reconciler) linkParent(store registry.Store, values []string, field registry.Field, featureName string) (*registry.Record, error) {
	if featureName == "" {
		return nil, nil
	}

	children, err := store.Filter(field, values, nil)
	if err != nil {
		return nil, err
	}

	parentName := ParentName(featureName)
	parent, ok := store.Get(field, parentName, nil)
	if !ok {
		parent = registry.NewRecord(field.Kind, map[string]string{field.Attr: parentName})
		stored, err := store.Save(parent)
		if err != nil {
			return nil, errors.WrapResource("create", "parent "+field.Kind.String(), parentName, err)
		}
		if stored == 0 {
			return nil, errors.NewIntegrityError("create", "parent "+field.Kind.String(), 1, stored)
		}
	}

	if err := store.AddChildren(parent, children...); err != nil {
		return nil, errors.WrapResource("link", field.Kind.String(), parentName, err)
	}
	return parent, nil
}
