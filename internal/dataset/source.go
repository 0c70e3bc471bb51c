package dataset

import (
	"math"

	"github.com/valyala/fastrand"
)

// warmup outputs are discarded so that neighbouring seeds diverge before
// the first draw.
const warmup = 16

// splitSalt separates the split stream from the generation stream of the
// same seed.
const splitSalt int64 = 0x5851f42d4c957f2d

// source is a seeded xorshift stream. fastrand.RNG treats a zero state as
// "reseed from the runtime", so the seed is mixed into a non-zero state.
type source struct {
	rng fastrand.RNG
}

func newSource(seed int64) *source {
	state := uint32((uint64(seed)*0x9e3779b97f4a7c15 + 0x632be59bd9b4e019) >> 32)
	if state == 0 {
		state = 0x9e3779b9
	}
	s := &source{}
	s.rng.Seed(state)
	for i := 0; i < warmup; i++ {
		s.rng.Uint32()
	}
	return s
}

// intn returns an integer in [0, n).
func (s *source) intn(n int) int {
	return int(s.rng.Uint32n(uint32(n)))
}

// intRange returns an integer in [min, max].
func (s *source) intRange(min, max int) int {
	return min + s.intn(max-min+1)
}

// uniform returns a real in [min, max].
func (s *source) uniform(min, max float64) float64 {
	return min + (max-min)*float64(s.rng.Uint32())/math.MaxUint32
}

func (s *source) choice(values []string) string {
	return values[s.intn(len(values))]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
