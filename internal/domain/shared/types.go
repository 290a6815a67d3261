package shared

// FetchStatus tells a dashboard why a collection looks the way it does
type FetchStatus string

const (
	FetchOK     FetchStatus = "ok"
	FetchEmpty  FetchStatus = "empty"
	FetchFailed FetchStatus = "failed"
)

// Collection is the result of a dashboard-support call. A failed call is
// reported as FetchFailed with the cause instead of being returned as an error.
type Collection[T any] struct {
	Items  []T
	Status FetchStatus
	Err    error
}

// NewCollection classifies items as ok or empty
func NewCollection[T any](items []T) Collection[T] {
	if len(items) == 0 {
		return Collection[T]{Items: []T{}, Status: FetchEmpty}
	}
	return Collection[T]{Items: items, Status: FetchOK}
}

// FailedCollection reports a call that could not be completed
func FailedCollection[T any](err error) Collection[T] {
	return Collection[T]{Items: []T{}, Status: FetchFailed, Err: err}
}

// Failed reports whether the backend call failed
func (c Collection[T]) Failed() bool {
	return c.Status == FetchFailed
}
