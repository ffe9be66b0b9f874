// Package stats holds the pure calculations applied to aggregated game data.
package stats

// Accuracy converts hit-count means into a single accuracy value: correct hits
// as a fraction of all recorded attempts, in [0, 1]. Inputs may be fractional
// since they are per-day averages. When no attempts were recorded at all the
// accuracy is defined as 0.
func Accuracy(correctHits, incorrectHits, missedHits float64) float64 {
	total := correctHits + incorrectHits + missedHits
	if total == 0 {
		return 0
	}
	return correctHits / total
}
