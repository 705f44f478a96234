package rop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of one hop or of a whole chain run.
// The zero value is empty: neither success nor failure.
type Result[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
	isCancel  bool
	hasResult bool
}

func stamp[T any](r T, err error, success, cancel bool) Result[T] {
	return Result[T]{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		result:    r,
		err:       err,
		isSuccess: success,
		isCancel:  cancel,
		hasResult: success,
	}
}

func Success[T any](r T) Result[T] {
	return stamp(r, nil, true, false)
}

func Fail[T any](err error) Result[T] {
	var zero T
	return stamp(zero, err, false, false)
}

// Cancel marks a result whose caller stopped waiting. The work behind it
// may still have run.
func Cancel[T any](err error) Result[T] {
	var zero T
	return stamp(zero, err, false, true)
}

// CancelFrom re-types a non-successful result, keeping its identity.
func CancelFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{id: from.id, createdAt: from.createdAt, err: from.err, isCancel: from.isCancel}
}

// Cast narrows a Result[any] to Result[T]. A successful result holding a
// value of another type becomes a failure.
func Cast[T any](from Result[any]) Result[T] {
	if !from.isSuccess {
		return CancelFrom[any, T](from)
	}

	v, ok := from.result.(T)
	if !ok {
		var zero T
		return Fail[T](fmt.Errorf("rop: result is %T, not %T", from.result, zero))
	}

	to := CancelFrom[any, T](from)
	to.result, to.isSuccess, to.hasResult = v, true, true
	return to
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil && !r.isSuccess
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) HasResult() bool {
	return r.hasResult
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isCancel && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}
