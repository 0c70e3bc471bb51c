package vector

import (
	"math"
)

type V []float64

func New(vec []float64) V {
	return vec
}

func Zeros(n int) V {
	return make(V, n)
}

func (v V) Dimensions() int {
	return len(v)
}

func (v V) Point(idx int) float64 {
	return v[idx]
}

func (v V) Points() []float64 {
	return v
}

func (v V) Copy() V {
	var v1 = make(V, len(v))
	copy(v1, v)
	return v1
}

func (v V) Sum() float64 {
	var s float64
	for i := range v {
		s += v[i]
	}
	return s
}

func (v V) Mean() float64 {
	if len(v) == 0 {
		return 0
	}
	return v.Sum() / float64(len(v))
}

// StdDev is the population standard deviation (divides by n).
func (v V) StdDev() float64 {
	if len(v) == 0 {
		return 0
	}
	mean := v.Mean()
	var s float64
	for i := range v {
		d := v[i] - mean
		s += d * d
	}
	return math.Sqrt(s / float64(len(v)))
}

func (v V) Dot(vec V) (float64, error) {
	if len(v) != len(vec) {
		return 0, ErrDimNotEqual
	}
	var s float64
	for i := range v {
		s += v[i] * vec[i]
	}
	return s, nil
}

// ArgMax returns the index of the largest element, the lowest index on ties.
// An empty vector yields -1.
func (v V) ArgMax() int {
	idx := -1
	for i := range v {
		if idx == -1 || v[i] > v[idx] {
			idx = i
		}
	}
	return idx
}

func (v V) Equal(vec V) bool {
	if len(v) != len(vec) {
		return false
	}
	for i, value := range v {
		if vec[i] != value {
			return false
		}
	}
	return true
}

func (v V) IsFinite() bool {
	for i := range v {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}
