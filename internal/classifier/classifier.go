// Package classifier trains and evaluates a multinomial logistic regression.
package classifier

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/go-sod/sleepq/internal/logging"
	"github.com/go-sod/sleepq/pkg/math/vector"
)

const (
	DefaultMaxIterations     = 1000
	DefaultC                 = 1.0
	DefaultGradientThreshold = 1e-4
)

type Option func(*options)

type options struct {
	classes           int
	maxIterations     int
	c                 float64
	gradientThreshold float64
}

// WithClasses fixes the number of classes. By default it is one more than
// the largest label.
func WithClasses(k int) Option {
	return func(o *options) {
		o.classes = k
	}
}

// WithMaxIterations caps the number of optimizer iterations.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		o.maxIterations = n
	}
}

// WithC sets the inverse L2 regularization strength.
func WithC(c float64) Option {
	return func(o *options) {
		o.c = c
	}
}

func WithGradientThreshold(g float64) Option {
	return func(o *options) {
		o.gradientThreshold = g
	}
}

var defaultOptions = options{
	maxIterations:     DefaultMaxIterations,
	c:                 DefaultC,
	gradientThreshold: DefaultGradientThreshold,
}

// Report describes how training ended.
type Report struct {
	Iterations int
	Loss       float64
	Status     string
	// Converged is false when the iteration cap stopped the optimizer
	Converged bool
}

// Fit minimizes the L2-regularized softmax cross-entropy with L-BFGS. The
// intercepts are not regularized. Reaching the iteration cap is not an
// error: the best weights found so far are returned.
func Fit(ctx context.Context, x []vector.V, y []int, opts ...Option) (*Weights, Report, error) {
	logger := logging.FromContext(ctx)
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}

	if len(x) == 0 {
		return nil, Report{}, fmt.Errorf("unable to fit on an empty training set")
	}
	if len(x) != len(y) {
		return nil, Report{}, fmt.Errorf("got %d inputs and %d labels", len(x), len(y))
	}
	if o.maxIterations <= 0 {
		return nil, Report{}, fmt.Errorf("max iterations must be positive, got %d", o.maxIterations)
	}
	if !(o.c > 0) {
		return nil, Report{}, fmt.Errorf("regularization C must be positive, got %v", o.c)
	}

	d := x[0].Dimensions()
	if d == 0 {
		return nil, Report{}, fmt.Errorf("inputs have no features")
	}
	k := o.classes
	for _, label := range y {
		if label < 0 {
			return nil, Report{}, fmt.Errorf("negative label %d", label)
		}
		if o.classes == 0 && label+1 > k {
			k = label + 1
		}
		if o.classes > 0 && label >= o.classes {
			return nil, Report{}, fmt.Errorf("label %d is outside [0, %d)", label, o.classes)
		}
	}
	if k < 2 {
		return nil, Report{}, fmt.Errorf("need at least 2 classes, got %d", k)
	}

	n := len(x)
	xm := mat.NewDense(n, d, nil)
	for i := range x {
		if x[i].Dimensions() != d {
			return nil, Report{}, fmt.Errorf("input %d has %d features, expected %d: %w", i, x[i].Dimensions(), d, vector.ErrDimNotEqual)
		}
		if !x[i].IsFinite() {
			return nil, Report{}, fmt.Errorf("input %d contains non-finite values", i)
		}
		xm.SetRow(i, x[i])
	}

	obj := &objective{
		x:      xm,
		y:      y,
		k:      k,
		d:      d,
		lambda: 1 / (o.c * float64(n)),
		z:      mat.NewDense(n, k, nil),
	}
	problem := optimize.Problem{
		Func: obj.Func,
		Grad: obj.Grad,
	}
	settings := &optimize.Settings{
		MajorIterations:   o.maxIterations,
		GradientThreshold: o.gradientThreshold,
	}

	x0 := make([]float64, k*d+k)
	result, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if result == nil {
		return nil, Report{}, fmt.Errorf("optimize.Minimize: %w", err)
	}

	w := &Weights{
		Classes:   int32(k),
		Features:  int32(d),
		Coef:      append([]float64{}, result.X[:k*d]...),
		Intercept: append([]float64{}, result.X[k*d:]...),
	}
	if vErr := w.Validate(); vErr != nil {
		if err != nil {
			return nil, Report{}, fmt.Errorf("optimize.Minimize: %v: %w", err, vErr)
		}
		return nil, Report{}, fmt.Errorf("invalid trained weights: %w", vErr)
	}

	report := Report{
		Iterations: result.Stats.MajorIterations,
		Loss:       result.F,
		Status:     result.Status.String(),
	}
	switch result.Status {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence, optimize.StepConvergence:
		report.Converged = err == nil
	}
	if err != nil {
		logger.Warnf("optimizer stopped early (%v), keeping best weights found", err)
	}
	if !report.Converged {
		logger.Warnf("training did not converge within %d iterations: status=%s loss=%.6f",
			o.maxIterations, report.Status, report.Loss)
	}
	logger.Debugf("training finished: iterations=%d loss=%.6f status=%s", report.Iterations, report.Loss, report.Status)

	return w, report, nil
}

// objective holds the training matrix and a score scratch buffer. The
// parameter vector is the row-major coefficients followed by the intercepts.
type objective struct {
	x      *mat.Dense
	y      []int
	k, d   int
	lambda float64
	z      *mat.Dense
}

func (o *objective) scores(theta []float64) {
	w := mat.NewDense(o.k, o.d, theta[:o.k*o.d])
	o.z.Mul(o.x, w.T())
	b := theta[o.k*o.d:]
	for i := range o.y {
		row := o.z.RawRowView(i)
		for c := range row {
			row[c] += b[c]
		}
	}
}

func (o *objective) Func(theta []float64) float64 {
	o.scores(theta)
	var loss float64
	for i, label := range o.y {
		row := o.z.RawRowView(i)
		loss += logSumExp(row) - row[label]
	}
	var reg float64
	for _, v := range theta[:o.k*o.d] {
		reg += v * v
	}
	return loss/float64(len(o.y)) + 0.5*o.lambda*reg
}

func (o *objective) Grad(grad, theta []float64) {
	o.scores(theta)
	inv := 1 / float64(len(o.y))
	for i, label := range o.y {
		row := o.z.RawRowView(i)
		softmax(row)
		row[label]--
		for c := range row {
			row[c] *= inv
		}
	}

	kd := o.k * o.d
	gw := mat.NewDense(o.k, o.d, grad[:kd])
	gw.Mul(o.z.T(), o.x)
	for j := 0; j < kd; j++ {
		grad[j] += o.lambda * theta[j]
	}

	gb := grad[kd:]
	for c := range gb {
		gb[c] = 0
	}
	for i := range o.y {
		row := o.z.RawRowView(i)
		for c := range row {
			gb[c] += row[c]
		}
	}
}
