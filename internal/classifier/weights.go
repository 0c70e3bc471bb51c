package classifier

import (
	"fmt"
	"math"

	"github.com/go-sod/sleepq/pkg/math/vector"
)

// Weights is a multinomial linear model: one coefficient row and one
// intercept per class.
type Weights struct {
	Classes  int32
	Features int32
	// Coef is Classes x Features, row-major
	Coef      []float64
	Intercept []float64
}

// Row returns the coefficients of class c.
func (w *Weights) Row(c int) vector.V {
	d := int(w.Features)
	return vector.New(w.Coef[c*d : (c+1)*d])
}

// Scores returns the linear score of every class for x.
func (w *Weights) Scores(x vector.V) (vector.V, error) {
	if x.Dimensions() != int(w.Features) {
		return nil, fmt.Errorf("input has %d features, model expects %d: %w", x.Dimensions(), w.Features, vector.ErrDimNotEqual)
	}
	scores := make(vector.V, w.Classes)
	for c := range scores {
		dot, err := w.Row(c).Dot(x)
		if err != nil {
			return nil, err
		}
		scores[c] = dot + w.Intercept[c]
	}
	return scores, nil
}

// Probabilities returns the softmax of Scores.
func (w *Weights) Probabilities(x vector.V) (vector.V, error) {
	scores, err := w.Scores(x)
	if err != nil {
		return nil, err
	}
	softmax(scores)
	return scores, nil
}

// Infer returns the class with the highest score. Ties go to the lowest
// class index.
func (w *Weights) Infer(x vector.V) (int, error) {
	scores, err := w.Scores(x)
	if err != nil {
		return 0, err
	}
	return scores.ArgMax(), nil
}

// Accuracy is the fraction of x classified as y.
func (w *Weights) Accuracy(x []vector.V, y []int) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("got %d inputs and %d labels", len(x), len(y))
	}
	if len(x) == 0 {
		return 0, fmt.Errorf("unable to evaluate on an empty set")
	}
	var hits int
	for i := range x {
		c, err := w.Infer(x[i])
		if err != nil {
			return 0, err
		}
		if c == y[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(x)), nil
}

// Validate checks the shape and values of decoded weights.
func (w *Weights) Validate() error {
	if w.Classes < 2 || w.Features < 1 {
		return fmt.Errorf("invalid model shape %dx%d", w.Classes, w.Features)
	}
	if len(w.Coef) != int(w.Classes)*int(w.Features) {
		return fmt.Errorf("expected %d coefficients, got %d", int(w.Classes)*int(w.Features), len(w.Coef))
	}
	if len(w.Intercept) != int(w.Classes) {
		return fmt.Errorf("expected %d intercepts, got %d", w.Classes, len(w.Intercept))
	}
	if !vector.V(w.Coef).IsFinite() || !vector.V(w.Intercept).IsFinite() {
		return fmt.Errorf("model contains non-finite weights")
	}
	return nil
}

func softmax(z []float64) {
	max := math.Inf(-1)
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	var sum float64
	for i := range z {
		z[i] = math.Exp(z[i] - max)
		sum += z[i]
	}
	for i := range z {
		z[i] /= sum
	}
}

func logSumExp(z []float64) float64 {
	max := math.Inf(-1)
	for _, v := range z {
		if v > max {
			max = v
		}
	}
	var sum float64
	for _, v := range z {
		sum += math.Exp(v - max)
	}
	return max + math.Log(sum)
}
