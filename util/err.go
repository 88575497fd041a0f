package util

// ErrWrap returns a function that unwraps a (value, error) pair
// falling back to the given default whenever error is not nil:
// > util.ErrWrap(0)(strconv.Atoi("x")) == 0
func ErrWrap[T any](def T) func(T, error) T {
	return func(value T, err error) T {
		if err != nil {
			return def
		}
		return value
	}
}

// ErrSuppress swallows the error of calls
// whose failure has no consequence on the flow
func ErrSuppress(err error) {
	_ = err
}

// ErrFirst returns the first non-nil error
func ErrFirst(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
