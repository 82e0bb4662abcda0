package calculator

import (
	"errors"
	"fmt"
)

var (
	// 配置错误，计算开始前检查
	ErrConfiguration        = errors.New("calculator: invalid configuration")
	ErrInvalidDimension     = fmt.Errorf("%w: width and height must be >= 1", ErrConfiguration)
	ErrResistanceRange      = fmt.Errorf("%w: resistance must be in [0, 1]", ErrConfiguration)
	ErrInjectionOutOfBounds = fmt.Errorf("%w: injection coordinate out of bounds", ErrConfiguration)
	ErrNonFinite            = fmt.Errorf("%w: value is NaN or Inf", ErrConfiguration)

	ErrOutOfBounds       = errors.New("calculator: coordinate out of bounds")
	ErrDimensionMismatch = errors.New("calculator: grid dimension mismatch")
	ErrTerminated        = errors.New("calculator: simulation already terminated")
	ErrNonConvergent     = errors.New("calculator: array did not converge")
	ErrDiverged          = errors.New("calculator: delta is NaN or Inf")
	ErrClosed            = errors.New("calculator: calculator is closed")
)

// NonConvergentError 超过最大迭代次数仍未收敛
type NonConvergentError struct {
	Iterations int
	Delta      float64
}

func (e *NonConvergentError) Error() string {
	return fmt.Sprintf("%s after %d iterations (delta %g)", ErrNonConvergent.Error(), e.Iterations, e.Delta)
}

func (e *NonConvergentError) Is(target error) bool {
	return target == ErrNonConvergent
}
