package store

import "reflect"

// diffRows compares two versions of a collection and reports the rows that
// must be written and the ids that must be removed. Rows are compared deeply,
// so a row whose position moved counts as changed.
func diffRows[R any](before, after []R, id func(R) string) (upserts []R, deletes []string) {
	old := make(map[string]R, len(before))
	for _, r := range before {
		old[id(r)] = r
	}

	seen := make(map[string]struct{}, len(after))
	for _, r := range after {
		key := id(r)
		seen[key] = struct{}{}
		if prev, ok := old[key]; ok && reflect.DeepEqual(prev, r) {
			continue
		}
		upserts = append(upserts, r)
	}

	for _, r := range before {
		key := id(r)
		if _, ok := seen[key]; !ok {
			deletes = append(deletes, key)
		}
	}
	return upserts, deletes
}
