package vector

import "fmt"

var ErrDimNotEqual = fmt.Errorf("vectors dimension is not equal")
