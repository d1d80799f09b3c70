package dispatch

import "github.com/hamed0406/sitecheck/internal/domain"

// Collect drains results until the channel is closed and returns them in
// arrival order. onResult, if set, sees each result as it arrives.
func Collect(results <-chan domain.ProbeResult, onResult func(domain.ProbeResult)) []domain.ProbeResult {
	out := make([]domain.ProbeResult, 0, cap(results))
	for r := range results {
		if onResult != nil {
			onResult(r)
		}
		out = append(out, r)
	}
	return out
}
