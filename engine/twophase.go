package engine

// ReorderByKeys returns items reordered to match the sequence of keys,
// dropping any item whose key isn't present in keys. Two-phase pagination's
// phase 2 re-fetch loses phase 1's ordering (a SQL `IN` clause does not
// preserve input order), so the result is sorted back into phase 1's order
// by identifier rather than re-running ORDER BY in SQL.
func ReorderByKeys[T any, K comparable](items []*T, keys []K, keyOf func(*T) K) []*T {
	byKey := make(map[K]*T, len(items))
	for _, it := range items {
		byKey[keyOf(it)] = it
	}
	out := make([]*T, 0, len(keys))
	for _, k := range keys {
		if it, ok := byKey[k]; ok {
			out = append(out, it)
		}
	}
	return out
}
