package registry

// InspectionResult is the exact, disjoint partition of a set of distinct
// raw values into those already present under a field (validated) and the
// rest (non-validated). It is produced fresh per inspection and never
// persisted.
type InspectionResult struct {
	Validated    []string
	NonValidated []string
}

// AllValidated reports whether every inspected value was already present.
func (r *InspectionResult) AllValidated() bool {
	return len(r.NonValidated) == 0
}

// Len returns the number of distinct values inspected.
func (r *InspectionResult) Len() int {
	return len(r.Validated) + len(r.NonValidated)
}

// Distinct coalesces duplicates while preserving first-seen order.
func Distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
