package classifier

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sleepq/pkg/math/vector"
)

// clusters returns three well separated blobs labeled 0, 1 and 2.
func clusters() ([]vector.V, []int) {
	centers := []vector.V{{0, 0}, {5, 0}, {0, 5}}
	jitter := []vector.V{{0.3, 0.1}, {-0.2, 0.25}, {0.1, -0.3}, {-0.25, -0.15}, {0, 0}, {0.2, 0.2}}
	var (
		x []vector.V
		y []int
	)
	for c, center := range centers {
		for _, j := range jitter {
			x = append(x, vector.V{center[0] + j[0], center[1] + j[1]})
			y = append(y, c)
		}
	}
	return x, y
}

func TestFit_Separable(t *testing.T) {
	x, y := clusters()
	w, report, err := Fit(context.Background(), x, y)
	require.NoError(t, err)
	assert.Equal(t, int32(3), w.Classes)
	assert.Equal(t, int32(2), w.Features)
	assert.Greater(t, report.Iterations, 0)

	acc, err := w.Accuracy(x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, acc)

	tests := []struct {
		name     string
		x        vector.V
		expected int
	}{
		{name: "origin", x: vector.V{0, 0}, expected: 0},
		{name: "right", x: vector.V{5, 0}, expected: 1},
		{name: "up", x: vector.V{0, 5}, expected: 2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := w.Infer(test.x)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)

			p, err := w.Probabilities(test.x)
			require.NoError(t, err)
			assert.InDelta(t, 1.0, p.Sum(), 1e-9)
		})
	}
}

func TestFit_Deterministic(t *testing.T) {
	x, y := clusters()
	w1, _, err := Fit(context.Background(), x, y)
	require.NoError(t, err)
	w2, _, err := Fit(context.Background(), x, y)
	require.NoError(t, err)
	assert.Equal(t, w1, w2)
}

func TestFit_IterationCap(t *testing.T) {
	x, y := clusters()
	w, report, err := Fit(context.Background(), x, y, WithMaxIterations(1))
	require.NoError(t, err, "hitting the cap is not an error")
	require.NotNil(t, w)
	assert.False(t, report.Converged)
	assert.NoError(t, w.Validate())
}

func TestFit_WithClasses(t *testing.T) {
	x, y := clusters()
	w, _, err := Fit(context.Background(), x, y, WithClasses(4))
	require.NoError(t, err)
	assert.Equal(t, int32(4), w.Classes)
	// the class without samples never wins on the training data
	for i := range x {
		c, err := w.Infer(x[i])
		require.NoError(t, err)
		assert.NotEqual(t, 3, c)
	}
}

func TestFit_Errors(t *testing.T) {
	x, y := clusters()
	tests := []struct {
		name string
		x    []vector.V
		y    []int
		opts []Option
	}{
		{name: "empty", x: nil, y: nil},
		{name: "length_mismatch", x: x, y: y[:3]},
		{name: "single_class", x: x[:2], y: []int{0, 0}},
		{name: "negative_label", x: x[:2], y: []int{0, -1}},
		{name: "label_outside_classes", x: x[:2], y: []int{0, 4}, opts: []Option{WithClasses(4)}},
		{name: "ragged", x: []vector.V{{1, 2}, {1}}, y: []int{0, 1}},
		{name: "nan_input", x: []vector.V{{1, math.NaN()}, {1, 2}}, y: []int{0, 1}},
		{name: "zero_iterations", x: x, y: y, opts: []Option{WithMaxIterations(0)}},
		{name: "zero_c", x: x, y: y, opts: []Option{WithC(0)}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := Fit(context.Background(), test.x, test.y, test.opts...)
			assert.Error(t, err)
		})
	}
}

func TestObjective_Gradient(t *testing.T) {
	x, y := clusters()
	n, d, k := len(x), 2, 3
	xm := mat.NewDense(n, d, nil)
	for i := range x {
		xm.SetRow(i, x[i])
	}
	obj := &objective{x: xm, y: y, k: k, d: d, lambda: 1 / float64(n), z: mat.NewDense(n, k, nil)}

	theta := []float64{0.3, -0.2, 0.1, 0.5, -0.4, 0.05, 0.2, -0.1, 0.3}
	grad := make([]float64, len(theta))
	obj.Grad(grad, theta)

	const h = 1e-6
	for j := range theta {
		plus := append([]float64{}, theta...)
		minus := append([]float64{}, theta...)
		plus[j] += h
		minus[j] -= h
		numeric := (obj.Func(plus) - obj.Func(minus)) / (2 * h)
		assert.InDelta(t, numeric, grad[j], 1e-5, "parameter %d", j)
	}
}

func TestWeights_InferTies(t *testing.T) {
	w := &Weights{Classes: 4, Features: 2, Coef: make([]float64, 8), Intercept: make([]float64, 4)}
	got, err := w.Infer(vector.V{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 0, got, "all-equal scores resolve to the lowest class")

	w.Intercept = []float64{0, 1, 1, 0}
	got, err = w.Infer(vector.V{1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}

func TestWeights_Errors(t *testing.T) {
	w := &Weights{Classes: 2, Features: 2, Coef: []float64{1, 0, 0, 1}, Intercept: []float64{0, 0}}
	require.NoError(t, w.Validate())
	_, err := w.Infer(vector.V{1})
	assert.ErrorIs(t, err, vector.ErrDimNotEqual)

	tests := []struct {
		name string
		w    *Weights
	}{
		{name: "short_coef", w: &Weights{Classes: 2, Features: 2, Coef: []float64{1}, Intercept: []float64{0, 0}}},
		{name: "short_intercept", w: &Weights{Classes: 2, Features: 1, Coef: []float64{1, 1}, Intercept: []float64{0}}},
		{name: "one_class", w: &Weights{Classes: 1, Features: 1, Coef: []float64{1}, Intercept: []float64{0}}},
		{name: "nan", w: &Weights{Classes: 2, Features: 1, Coef: []float64{math.NaN(), 1}, Intercept: []float64{0, 0}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, test.w.Validate())
		})
	}
}
