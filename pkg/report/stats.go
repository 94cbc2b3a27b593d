package report

import "sort"

// CodeFrequency is one entry of the failing-code leaderboard.
type CodeFrequency struct {
	Code       string
	Count      int
	Percentage float64
}

// Statistics summarizes the reporter's rolling error history.
type Statistics struct {
	TotalErrors int
	TopCodes    []CodeFrequency
}

// Statistics derives the top-n failing codes by frequency over everything
// the reporter has ever recorded. Ties break lexicographically by code so
// the ordering is deterministic.
func (r *Reporter) Statistics(topN int) Statistics {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := len(r.history)
	counts := make(map[string]int)
	for _, re := range r.history {
		counts[re.Code]++
	}

	freqs := make([]CodeFrequency, 0, len(counts))
	for code, count := range counts {
		freqs = append(freqs, CodeFrequency{
			Code:       code,
			Count:      count,
			Percentage: float64(count) / float64(total) * 100,
		})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].Count != freqs[j].Count {
			return freqs[i].Count > freqs[j].Count
		}
		return freqs[i].Code < freqs[j].Code
	})

	if topN > 0 && len(freqs) > topN {
		freqs = freqs[:topN]
	}

	return Statistics{TotalErrors: total, TopCodes: freqs}
}

// HistorySize returns the number of errors recorded since the last clear.
func (r *Reporter) HistorySize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

// ClearHistory discards the rolling history.
func (r *Reporter) ClearHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = nil
}
