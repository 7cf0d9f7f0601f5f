package model

// BinCounts maps event times onto a grid and returns how many events
// landed in each bin. Bin k receives times in [Bound(k), Bound(k+1)),
// and the final bin additionally claims its right endpoint. The
// observations are validated against the grid window first, so every
// event is counted exactly once and the counts always total len(obs).
func BinCounts(obs Observations, g *Grid) ([]int, error) {
	if err := obs.Validate(g.T0(), g.T()); err != nil {
		return nil, err
	}

	counts := make([]int, g.Bins())

	// Both the times and the boundaries are sorted, so a single merge
	// pass suffices.
	k := 0
	for _, x := range obs {
		for k < g.Bins()-1 && x >= g.Bound(k+1) {
			k++
		}
		counts[k]++
	}

	return counts, nil
}

// TotalEvents sums a count vector.
func TotalEvents(counts []int) int {
	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
