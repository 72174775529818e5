package ecs

// Intersect returns the entities present in both sets, in ascending slot order.
func Intersect[A, B any](a *SparseSet[A], b *SparseSet[B]) []Entity {
	if a == nil || b == nil {
		return nil
	}
	out := make([]Entity, 0, min(a.Len(), b.Len()))
	for _, e := range a.Entities() {
		if b.Has(e) {
			out = append(out, e)
		}
	}
	return out
}
