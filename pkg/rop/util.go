package rop

import (
	"context"
	"errors"
	"reflect"
)

// IsNil reports whether i is nil or a typed nil of a nillable kind.
func IsNil(i any) bool {
	if i == nil {
		return true
	}

	switch v := reflect.ValueOf(i); v.Kind() {
	case reflect.Ptr, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// GetErrors flattens an errors.Join tree one level.
func GetErrors(err error) []error {
	if err == nil {
		return []error{}
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
