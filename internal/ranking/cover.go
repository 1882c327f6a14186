package ranking

// CoverPlan chooses stores greedily until the requested items are covered:
// each round picks the store covering the most still-uncovered items, ties
// broken by candidate order. It stops as soon as the uncovered set is empty
// or no remaining store shrinks it further, so a single store whose coverage
// exhausts the list ends the plan immediately. The function is pure: it
// neither mutates its inputs nor consults any state outside them.
func CoverPlan(coverage map[string][]string, order []string, items []string) []string {
	uncovered := make(map[string]bool, len(items))
	for _, item := range items {
		uncovered[item] = true
	}

	chosen := []string{}
	used := make(map[string]bool, len(order))

	for len(uncovered) > 0 {
		best := ""
		bestGain := 0

		for _, store := range order {
			if used[store] {
				continue
			}
			gain := 0
			for _, item := range coverage[store] {
				if uncovered[item] {
					gain++
				}
			}
			if gain > bestGain {
				best, bestGain = store, gain
			}
		}

		if bestGain == 0 {
			break
		}

		used[best] = true
		chosen = append(chosen, best)
		for _, item := range coverage[best] {
			delete(uncovered, item)
		}
	}

	return chosen
}
