package imageprocessor

import "fmt"

// NormalizeScore converts a match ratio into the reported dissimilarity.
// Only the endpoints are flipped: a full match (1.0) becomes 0.0 and a
// full non-match (0.0) becomes 1.0. Partial ratios are reported as is.
//
// A ratio outside [0, 1] means the engine is broken and panics.
func NormalizeScore(ratio float64) float64 {
	if !(ratio >= 0 && ratio <= 1) {
		panic(fmt.Sprintf("imageprocessor: match ratio %v out of range [0, 1]", ratio))
	}
	if ratio == 0.0 || ratio == 1.0 {
		return 1.0 - ratio
	}
	return ratio
}
