package goalqueue

import (
	"errors"
	"fmt"
)

// ErrExecutorClosed is returned by Submit after Stop has been called.
var ErrExecutorClosed = errors.New("goalqueue: executor closed")

// ErrQueueFull is the sentinel matched by errors.Is for back-pressure
// failures; the concrete value is a *QueueFullError.
var ErrQueueFull = errors.New("goalqueue: queue full")

// QueueFullError reports which shard rejected a submission and how full it
// was at the time.
type QueueFullError struct {
	Shard    int
	Length   int
	Capacity int
}

// Error implements the error interface.
func (e *QueueFullError) Error() string {
	return fmt.Sprintf("goalqueue: shard %d full (%d/%d)", e.Shard, e.Length, e.Capacity)
}

// Is lets errors.Is match ErrQueueFull.
func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }
