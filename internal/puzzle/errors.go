package puzzle

import "fmt"

// AssertionError signals a malformed puzzle: an out-of-range index, an
// unknown room or cell type, or a constraint that references a suspect
// that doesn't exist. It is a programmer-facing diagnostic raised by
// NewBoard/NewSolver-style constructors, never a runtime "no hint
// available" condition. Hosts embedding the engine are
// expected to validate puzzle data before calling into it and to recover
// from this if user-supplied puzzle data can't be trusted.
type AssertionError struct {
	message string
}

func (e AssertionError) Error() string {
	return e.message
}

func assertf(format string, args ...any) {
	panic(AssertionError{message: fmt.Sprintf(format, args...)})
}

// Assertf panics with an AssertionError built from format/args. Other
// engine packages (boardindex, solver) use this to raise the same
// programmer-facing diagnostic puzzle.Validate uses internally, so a host
// can recover a single error type at the API boundary regardless of which
// package detected the malformed input.
func Assertf(format string, args ...any) {
	assertf(format, args...)
}
