package dxf

import "sort"

// ReconcileSchema computes the column ordering for one export batch: the
// union of all record keys, with preferred fields first in their canonical
// order and every remaining field (XDATA application tags) appended in
// lexicographic order. The result is a pure function of the key set, so
// re-exporting the same drawing yields an identical header.
func ReconcileSchema(records []Record) []string {
	present := make(map[string]bool)
	for _, rec := range records {
		for field := range rec {
			present[field] = true
		}
	}

	fields := make([]string, 0, len(present))
	for _, field := range preferredFields {
		if present[field] {
			fields = append(fields, field)
			delete(present, field)
		}
	}

	rest := make([]string, 0, len(present))
	for field := range present {
		rest = append(rest, field)
	}
	sort.Strings(rest)

	return append(fields, rest...)
}
