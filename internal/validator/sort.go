package validator

import "sort"

// statusRank orders the report so problems surface first. Lower is earlier.
var statusRank = map[Status]int{
	StatusNoIndex:     0,
	StatusInvalid:     1,
	StatusNotFound:    2,
	StatusServerError: 3,
	StatusIndexed:     4,
	StatusEmptyPage:   5,
}

// SortResults imposes the final total order: status rank first, then ordinal
// URL comparison. Deterministic for any fixed (url, status) set; URLs are
// unique post-dedup so no further tiebreak exists.
func SortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		ri, rj := statusRank[results[i].Status], statusRank[results[j].Status]
		if ri != rj {
			return ri < rj
		}
		return results[i].URL < results[j].URL
	})
}
