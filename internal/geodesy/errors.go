package geodesy

import (
	"errors"
	"fmt"
)

// ErrConvergence indicates the geodetic latitude iteration did not settle.
var ErrConvergence = errors.New("geodesy: geodetic latitude did not converge")

// ConvergenceError carries the last iterate of a failed latitude solve.
type ConvergenceError struct {
	Iterations int
	Last       Geodetic
	Delta      float64
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (|dlat|=%.3g)", ErrConvergence, e.Iterations, e.Delta)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrConvergence
}
