package dispatch

// Plan splits total outputs into sub-batch sizes of at most maxPerCall.
// A maxPerCall below one is treated as unbounded.
func Plan(total, maxPerCall int) []int {
	if total <= 0 {
		return nil
	}
	if maxPerCall <= 0 || maxPerCall > total {
		maxPerCall = total
	}
	n := (total + maxPerCall - 1) / maxPerCall
	sizes := make([]int, 0, n)
	for remaining := total; remaining > 0; remaining -= maxPerCall {
		sizes = append(sizes, min(maxPerCall, remaining))
	}
	return sizes
}
