package store

import "context"

// Task is the handle of an action running in the background.
type Task struct {
	done chan struct{}
	err  error
}

// Go runs fn in its own goroutine and returns immediately.
func Go(ctx context.Context, fn func(context.Context) error) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.err = fn(ctx)
	}()
	return t
}

// Done is closed when the action has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the action finishes and returns its error.
func (t *Task) Wait() error {
	<-t.done
	return t.err
}

// WaitContext is Wait bounded by ctx.
func (t *Task) WaitContext(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
