package utils

import (
	"math"
	"testing"
)

func TestNormalizeL2(t *testing.T) {
	vec := map[int]float64{0: 3, 2: 4}
	NormalizeL2(vec)
	if math.Abs(vec[0]-0.6) > 1e-12 || math.Abs(vec[2]-0.8) > 1e-12 {
		t.Errorf("got %v, want {0:0.6, 2:0.8}", vec)
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if math.Abs(norm-1.0) > 1e-12 {
		t.Errorf("norm = %f, want 1", norm)
	}
}

func TestNormalizeL2ZeroVector(t *testing.T) {
	vec := map[int]float64{1: 0, 3: 0}
	NormalizeL2(vec)
	for i, v := range vec {
		if v != 0 {
			t.Errorf("vec[%d] = %f, want 0", i, v)
		}
	}
}

func TestNormalizeL2Empty(t *testing.T) {
	vec := map[int]float64{}
	NormalizeL2(vec)
	if len(vec) != 0 {
		t.Error("empty vector should stay empty")
	}
}
