package reconcile

import "errors"

var (
	// ErrNotFound means the post exists neither locally nor remotely.
	ErrNotFound = errors.New("post not found")
	// ErrUnwritable means a mutation could not be persisted to the local store.
	ErrUnwritable = errors.New("local store unwritable")
)
