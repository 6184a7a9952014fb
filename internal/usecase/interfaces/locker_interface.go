package interfaces

import (
	"context"
	"errors"
)

var ErrLockNotAcquired = errors.New("lock not acquired")

// ILocker provides short-lived, best-effort mutual exclusion keyed by name.
//
// Acquire returns ErrLockNotAcquired when someone else holds the key.
type ILocker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}
