package queue

import "errors"

// ErrClosed reports a double close of the queue.
var ErrClosed = errors.New("queue already closed")
