package uipanel

import "context"

// Task is the handle returned by the fire-and-forget entry points
// (OpenAsync, CloseAsync). The synchronous part of the request has already
// run when the Task is returned; Wait blocks for the rest.
type Task struct {
	done chan struct{}
	err  error
}

func newTask() *Task {
	return &Task{done: make(chan struct{})}
}

// completedTask returns a Task that is already done with err.
func completedTask(err error) *Task {
	t := newTask()
	t.finish(err)
	return t
}

// goTask runs fn on its own goroutine and returns its handle.
func goTask(fn func() error) *Task {
	t := newTask()
	go func() {
		t.finish(fn())
	}()
	return t
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

// Done is closed when the task has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task finishes or ctx is done and returns the task's
// error or the context's.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the task's error. It is only meaningful once Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}
