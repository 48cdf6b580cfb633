// Package result defines the three-state outcome every coordinator operation
// reports: Loading, then exactly one of Success or Failure.
package result

import "context"

// State is a closed sum type. Only Loading, Success and Failure implement it.
type State[T any] interface {
	isState()
	// Terminal reports whether no further states follow.
	Terminal() bool
}

// Loading signals an operation in progress. Partial optionally carries the
// last-known-good value.
type Loading[T any] struct {
	Partial *T
}

// Success carries the fresh value produced by the operation.
type Success[T any] struct {
	Data T
}

// Failure carries a human-readable message and optionally the last-known-good
// value.
type Failure[T any] struct {
	Message string
	Partial *T
}

func (Loading[T]) isState() {}
func (Success[T]) isState() {}
func (Failure[T]) isState() {}

func (Loading[T]) Terminal() bool { return false }
func (Success[T]) Terminal() bool { return true }
func (Failure[T]) Terminal() bool { return true }

// Match dispatches s to the handler for its concrete variant. All three
// handlers are required.
func Match[T, R any](s State[T], loading func(Loading[T]) R, success func(Success[T]) R, failure func(Failure[T]) R) R {
	switch v := s.(type) {
	case Loading[T]:
		return loading(v)
	case Success[T]:
		return success(v)
	case Failure[T]:
		return failure(v)
	}
	panic("result: unknown state")
}

// Collect drains ch and returns every state in emission order.
func Collect[T any](ch <-chan State[T]) []State[T] {
	var out []State[T]
	for s := range ch {
		out = append(out, s)
	}
	return out
}

// Await returns the terminal state of ch, skipping Loading states. It returns
// ctx.Err() if ctx ends first, and a Failure if ch closes without a terminal
// state.
func Await[T any](ctx context.Context, ch <-chan State[T]) (State[T], error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case s, ok := <-ch:
			if !ok {
				return Failure[T]{Message: "operation ended without a result"}, nil
			}
			if s.Terminal() {
				return s, nil
			}
		}
	}
}
