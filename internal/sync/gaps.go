package sync

import (
	"jpdiet/kokkaiharvester/internal/store"
)

// Missing returns the integers inside [min(ids), max(ids)] that are neither
// present in ids nor recorded as known-empty. These are identifiers suspected
// to have been skipped by transient failures, and the driver re-runs the
// per-identifier step over exactly this list. An empty input yields an empty
// result since no range can be inferred.
func Missing(ids []int, markers *store.MarkerSet) []int {
	if len(ids) == 0 {
		return nil
	}
	lo, hi := ids[0], ids[0]
	present := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		present[id] = struct{}{}
		if id < lo {
			lo = id
		}
		if id > hi {
			hi = id
		}
	}
	var missing []int
	for id := lo; id <= hi; id++ {
		if _, ok := present[id]; ok {
			continue
		}
		if markers != nil && markers.Has(id) {
			continue
		}
		missing = append(missing, id)
	}
	return missing
}
