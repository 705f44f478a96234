package rop

import "time"

// Outcome is the read side of a Result, for code that only reports.
type Outcome[T any] interface {
	Result() T
	Err() error
	IsSuccess() bool
	IsFailure() bool
	IsCancel() bool
	CreatedAt() time.Time
}

var _ Outcome[any] = Result[any]{}
