package errors

// this file is for compatibility with both:
// + stdlib errors package after Go 1.13
// + pkg/errors
//
// this allows this package to be a drop in replacement
// for both when handling enriched errors

import (
	"fmt"
	// reflectlite is a package internal to the stdlib, but its API is the same
	// as reflect. This rename keeps the code below identical to that in the
	// internals of the errors package.
	reflectlite "reflect"

	stderrs "errors"
)

// New returns an error that formats as the given text.
// Each call to New returns a distinct error value even if the text is identical.
func New(text string) error {
	return stderrs.New(text)
}

// UnwrapOnce peels one layer off err: the result of its Cause() or
// Unwrap() method, or nil when err wraps nothing. Cause() is preferred
// for compatibility with github.com/pkg/errors.
func UnwrapOnce(err error) error {
	switch e := err.(type) {
	case interface{ Cause() error }:
		return e.Cause()
	case interface{ Unwrap() error }:
		return e.Unwrap()
	}

	return nil
}

// UnwrapAll walks the chain of causes and returns the innermost error.
func UnwrapAll(err error) error {
	for {
		next := UnwrapOnce(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// Cause aliases UnwrapAll() for compatibility with github.com/pkg/errors.
func Cause(err error) error { return UnwrapAll(err) }

// Unwrap aliases UnwrapOnce() for compatibility with stdlib errors.
func Unwrap(err error) error { return UnwrapOnce(err) }

// As finds the first error in err's chain that matches the type to which
// target points, and if so, sets the target to its value and returns true.
// An error matches a type if it is assignable to the target type, or if it
// has a method As(interface{}) bool such that As(target) returns true. As
// will panic if target is not a non-nil pointer to a type which implements
// error or is of interface type.
//
// Note: this implementation differs from the stdlib in that it also
// recurses through causes exposed with Cause().
func As(err error, target interface{}) bool {
	if target == nil {
		panic(fmt.Errorf("errors.As: target cannot be nil"))
	}

	val := reflectlite.ValueOf(target)
	typ := val.Type()
	if typ.Kind() != reflectlite.Ptr || val.IsNil() {
		panic(fmt.Errorf("errors.As: target must be a non-nil pointer, found %T", target))
	}
	if e := typ.Elem(); e.Kind() != reflectlite.Interface && !e.Implements(errorType) {
		panic(fmt.Errorf("errors.As: *target must be interface or implement error, found %T", target))
	}

	targetType := typ.Elem()
	for c := err; c != nil; c = UnwrapOnce(c) {
		if reflectlite.TypeOf(c).AssignableTo(targetType) {
			val.Elem().Set(reflectlite.ValueOf(c))

			return true
		}
		if x, ok := c.(interface{ As(interface{}) bool }); ok && x.As(target) {
			return true
		}
	}

	return false
}

var errorType = reflectlite.TypeOf((*error)(nil)).Elem()

// Is determines whether the given error or any of its causes is
// equivalent to some reference error.
//
// As in the Go standard library, an error is considered to match a
// reference error if it is equal to that target or if it implements a
// method Is(error) bool such that Is(reference) returns true.
func Is(err, reference error) bool {
	if reference == nil {
		return err == nil
	}

	// Direct reference comparison is the fastest, and most
	// likely to be true, so do this first.
	for c := err; c != nil; c = UnwrapOnce(c) {
		if equal(c, reference) {
			return true
		}
		// Compatibility with std go errors: if the error object itself
		// implements Is(), try to use that.
		if tryDelegateToIsMethod(c, reference) {
			return true
		}
	}

	return false
}

// This is only extracted to make the linters not suggest fixing it
func equal(err, reference interface{}) bool {
	return err == reference
}

func tryDelegateToIsMethod(err, reference error) bool {
	if x, ok := err.(interface{ Is(error) bool }); ok && x.Is(reference) {
		return true
	}

	return false
}
