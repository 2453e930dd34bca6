package errors

import "errors"

// ErrOptimisticLock is returned when a guarded write lost against a
// concurrent update; callers should re-read and retry.
var ErrOptimisticLock = errors.New("record was modified by another operation, retry")
