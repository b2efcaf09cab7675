package utils

import "math"

// NormalizeL2 scales the sparse vector in place to unit L2 norm.
// A zero vector is unchanged.
func NormalizeL2(vec map[int]float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := 1.0 / math.Sqrt(sum)
	for i := range vec {
		vec[i] *= norm
	}
}
