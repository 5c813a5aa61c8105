// Package results provides the success/failure envelope returned by
// application services. A Failure is an expected domain outcome (not found,
// forbidden, invalid input); infrastructure problems travel as plain errors.
package results

// OperationResult holds either a success payload or a failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult wraps a success payload.
func SuccessResult[S any, F any](s S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &s}
}

// FailureResult wraps a failure payload.
func FailureResult[S any, F any](f F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &f}
}

// IsSuccess reports whether the result carries a success payload.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the result carries a failure payload.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}

// Unwrap converts an error-typed result into the (value, error) pair used by
// public service methods. An empty result yields the zero value and nil.
func Unwrap[S any](r OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if r.IsFailure() {
		return zero, *r.Failure
	}
	if r.IsSuccess() {
		return *r.Success, nil
	}
	return zero, nil
}
