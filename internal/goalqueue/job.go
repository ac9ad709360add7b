package goalqueue

import (
	"context"
	"errors"
	"fmt"
)

// Job is a unit of work executed by an Executor.
// Run must be safe for concurrent invocations when the same Job instance is
// reused.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a plain closure to a Job.
type JobFunc func(ctx context.Context) error

// ErrNilJobFunc is returned when a nil JobFunc is run.
var ErrNilJobFunc = errors.New("nil JobFunc")

// Run implements Job for JobFunc.
func (f JobFunc) Run(ctx context.Context) error {
	if f == nil {
		return fmt.Errorf("goalqueue: %w", ErrNilJobFunc)
	}
	return f(ctx)
}
