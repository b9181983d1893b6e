package transformers

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// quantile interpolates linearly between the two closest ranks, position
// (n-1)*p. sorted must be ascending.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	pos := float64(len(sorted)-1) * p
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

func median(vals []float64) float64 {
	sorted := sortedCopy(vals)
	return quantile(sorted, 0.5)
}

func sortedCopy(vals []float64) []float64 {
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return sorted
}

// modeFloat returns the most frequent value, the smallest one on ties.
func modeFloat(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	counts := make(map[float64]int, len(vals))
	for _, v := range vals {
		counts[v]++
	}
	best, bestCount := math.NaN(), 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

// modeString returns the most frequent value, the lexically smallest on ties.
func modeString(vals []string) (string, bool) {
	if len(vals) == 0 {
		return "", false
	}
	counts := make(map[string]int, len(vals))
	for _, v := range vals {
		counts[v]++
	}
	var best string
	bestCount := 0
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best, true
}

// dedupeSorted drops repeated values from an ascending slice.
func dedupeSorted(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for i, v := range vals {
		if i > 0 && v == out[len(out)-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}
