package repository

import "fmt"

// CacheError wraps any storage-layer failure so callers never see raw
// database errors. The intentional duplicate-skip on message insert is not
// an error and never produces one of these.
type CacheError struct {
	Op  string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache: %s: %v", e.Op, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

func cacheErr(op string, err error) error {
	return &CacheError{Op: op, Err: err}
}
