package layout

import "qslgen/record"

// Page is one unit of output: a callsign's record subset bounded by the page
// capacity, plus the counters the confirmation banner needs. Pages are value
// objects; the composer consumes them and nothing persists.
type Page struct {
	Callsign string
	Index    int // 1-based card number within the callsign
	Total    int // cards for this callsign
	Records  []record.Raw
	// TotalRecords is the callsign's record count across all of its pages.
	TotalRecords int
}

// Paginate groups records by uppercased callsign, preserving first-seen group
// order and within-group input order, and splits each group into consecutive
// chunks of at most capacity records. Output is fully deterministic for a
// fixed input order.
func Paginate(records []record.Raw, capacity int) []Page {
	if capacity < 1 {
		capacity = 1
	}

	var order []string
	groups := make(map[string][]record.Raw)
	for _, r := range records {
		call := r.Call()
		if call == "" {
			continue
		}
		if _, seen := groups[call]; !seen {
			order = append(order, call)
		}
		groups[call] = append(groups[call], r)
	}

	var pages []Page
	for _, call := range order {
		recs := groups[call]
		total := (len(recs) + capacity - 1) / capacity
		for i := 0; i < len(recs); i += capacity {
			end := i + capacity
			if end > len(recs) {
				end = len(recs)
			}
			pages = append(pages, Page{
				Callsign:     call,
				Index:        i/capacity + 1,
				Total:        total,
				Records:      recs[i:end],
				TotalRecords: len(recs),
			})
		}
	}
	return pages
}
