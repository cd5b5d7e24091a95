package matching

import (
	"math"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Similarity returns an edit-distance ratio in [0,1]: 1 for identical
// strings, 0 when every character has to change.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1 - float64(distance)/float64(longest)
}

// percent scales a ratio to 0-100, rounding down. The epsilon absorbs
// float error on exact fractions such as 0.29*100.
func percent(ratio float64) int {
	return int(math.Floor(ratio*100 + 1e-9))
}
