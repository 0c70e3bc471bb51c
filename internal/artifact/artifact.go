// Package artifact persists the fitted transformer and classifier weights
// as one unit.
package artifact

import (
	"errors"
	"fmt"

	"github.com/go-sod/sleepq/internal/classifier"
	"github.com/go-sod/sleepq/internal/labeling"
	"github.com/go-sod/sleepq/internal/transform"
)

// SchemaVersion is bumped whenever the encoded layout changes. A blob with
// another version is treated as corrupt and retrained.
const SchemaVersion uint32 = 1

var (
	ErrCorrupt  = errors.New("model artifact is corrupt")
	ErrNotFound = errors.New("model artifact not found")
)

// CorruptError wraps the reason a stored blob could not be used.
type CorruptError struct {
	Err error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCorrupt, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

func (e *CorruptError) Is(target error) bool {
	return target == ErrCorrupt
}

// Artifact is everything needed to serve predictions.
type Artifact struct {
	ID        string
	CreatedAt string
	Seed      int64
	Samples   int32
	Holdout   float64
	// Accuracy on the holdout split
	Accuracy   float64
	Iterations int32
	Converged  bool

	Transformer transform.State
	Weights     classifier.Weights
}

// Validate checks that the transformer and the weights fit together.
func (a *Artifact) Validate() error {
	if err := a.Transformer.Validate(); err != nil {
		return fmt.Errorf("transformer: %w", err)
	}
	if err := a.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if int(a.Weights.Features) != a.Transformer.Dim() {
		return fmt.Errorf("weights expect %d features, transformer produces %d", a.Weights.Features, a.Transformer.Dim())
	}
	if a.Weights.Classes != labeling.NumClasses {
		return fmt.Errorf("weights have %d classes, expected %d", a.Weights.Classes, labeling.NumClasses)
	}
	return nil
}
