package domain

// RequestStatus is the lifecycle stage of a fetch
type RequestStatus string

const (
	StatusIdle    RequestStatus = "idle"
	StatusLoading RequestStatus = "loading"
	StatusError   RequestStatus = "error"
	StatusSuccess RequestStatus = "success"
)

// RequestState is the outcome of a fetch as seen by a screen
type RequestState[T any] struct {
	Status RequestStatus
	Data   T
	Err    error
}

// Idle is the state before any fetch
func Idle[T any]() RequestState[T] {
	return RequestState[T]{Status: StatusIdle}
}

// Loading marks a fetch in progress
func Loading[T any]() RequestState[T] {
	return RequestState[T]{Status: StatusLoading}
}

// Failed records a fetch error
func Failed[T any](err error) RequestState[T] {
	return RequestState[T]{Status: StatusError, Err: err}
}

// Succeeded holds the fetched data
func Succeeded[T any](data T) RequestState[T] {
	return RequestState[T]{Status: StatusSuccess, Data: data}
}

// Ready reports whether Data holds a successful result
func (r RequestState[T]) Ready() bool {
	return r.Status == StatusSuccess
}
