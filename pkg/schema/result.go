package schema

// resultKind tags the three possible outcomes of resolving a node.
type resultKind int

const (
	kindMissing resultKind = iota
	kindSuccess
	kindError
)

// Result is the outcome of resolving a node against a snapshot. It is exactly
// one of success (carrying a value), missing, or error. A Result never carries
// a partial value.
type Result[T any] struct {
	kind  resultKind
	value T
	err   error
}

// Success returns a successful Result holding v.
func Success[T any](v T) Result[T] {
	return Result[T]{kind: kindSuccess, value: v}
}

// Missing returns a Result signalling that the value was not provided and had
// no default.
func Missing[T any]() Result[T] {
	return Result[T]{kind: kindMissing}
}

// Failure returns a Result carrying err.
func Failure[T any](err error) Result[T] {
	return Result[T]{kind: kindError, err: err}
}

// IsSuccess reports whether r holds a value.
func (r Result[T]) IsSuccess() bool { return r.kind == kindSuccess }

// IsMissing reports whether r is the missing outcome.
func (r Result[T]) IsMissing() bool { return r.kind == kindMissing }

// IsError reports whether r carries an error.
func (r Result[T]) IsError() bool { return r.kind == kindError }

// Value returns the held value and whether r is a success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.kind == kindSuccess
}

// Err returns the error of an error Result, ErrMissingVariable for a missing
// Result and nil on success.
func (r Result[T]) Err() error {
	switch r.kind {
	case kindError:
		return r.err
	case kindMissing:
		return ErrMissingVariable
	default:
		return nil
	}
}

// Entry names a single Result for Combine.
type Entry[T any] struct {
	Name   string
	Result Result[T]
}

// Combine folds named results into a single Result holding a map of all values.
// It succeeds only if every entry succeeded; otherwise it returns one
// *AggregateError naming every failing entry, missing or errored, in input
// order.
func Combine[T any](entries []Entry[T]) Result[map[string]T] {
	values := make(map[string]T, len(entries))
	var agg AggregateError

	for _, e := range entries {
		switch e.Result.kind {
		case kindSuccess:
			values[e.Name] = e.Result.value
		case kindMissing:
			agg.Fields = append(agg.Fields, e.Name)
			agg.Causes = append(agg.Causes, &FieldError{Field: e.Name, Err: ErrMissingVariable})
		case kindError:
			agg.Fields = append(agg.Fields, e.Name)
			agg.Causes = append(agg.Causes, &FieldError{Field: e.Name, Err: e.Result.err})
		}
	}

	if len(agg.Fields) > 0 {
		return Failure[map[string]T](&agg)
	}
	return Success(values)
}

// mapResult converts the value of a successful Result with f. Missing and
// error results pass through unchanged.
func mapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	switch r.kind {
	case kindSuccess:
		return Success(f(r.value))
	case kindError:
		return Failure[U](r.err)
	default:
		return Missing[U]()
	}
}
