package driverlogic

import "fmt"

// BoundsError reports invalid run parameters (n, d, c out of range, an
// unknown mode, a missing vertex list). It is fatal: the Driver aborts the
// run (spec.md §7). Vertex ids read from the stream are not checked against
// [0,n), so no BoundsError is raised for them.
type BoundsError struct {
	Reason string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("driver: bounds violation: %s", e.Reason)
}

// ResourceBudgetError reports that a counter type would overflow at the
// configured universe size. Fatal at construction (spec.md §7).
type ResourceBudgetError struct {
	Reason string
}

func (e *ResourceBudgetError) Error() string {
	return fmt.Sprintf("driver: resource budget exceeded: %s", e.Reason)
}

// ValidateParams checks n >= 1, d >= 1, c >= 2, n > d, per spec.md §7.
func ValidateParams(n, d, c int) error {
	if n < 1 {
		return &BoundsError{Reason: fmt.Sprintf("n=%d must be >= 1", n)}
	}
	if d < 1 {
		return &BoundsError{Reason: fmt.Sprintf("d=%d must be >= 1", d)}
	}
	if c < 2 {
		return &BoundsError{Reason: fmt.Sprintf("c=%d must be >= 2", c)}
	}
	if n <= d {
		return &BoundsError{Reason: fmt.Sprintf("n=%d must exceed d=%d", n, d)}
	}
	return nil
}
