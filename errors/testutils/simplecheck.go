// Package testutils provides minimal check/assert helpers for tests.
// Check-style helpers report and continue; Assert-style helpers stop the
// test immediately.
package testutils

import (
	"reflect"
	"regexp"
	"testing"

	"github.com/kr/pretty"
)

// T wraps *testing.T with the check/assert helpers.
type T struct {
	*testing.T
}

// Run runs f as a subtest, wrapping the subtest's *testing.T.
func (t T) Run(name string, f func(t T)) bool {
	return t.T.Run(name, func(st *testing.T) {
		f(T{T: st})
	})
}

// Check reports a test error with the given messages unless cond holds.
func (t T) Check(cond bool, msgs ...interface{}) {
	t.Helper()
	if !cond {
		t.Error(msgs...)
	}
}

// CheckEqual reports a test error unless expected == actual.
func (t T) CheckEqual(expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

// CheckDeepEqual reports a test error with a pretty diff unless the two
// values are deeply equal.
func (t T) CheckDeepEqual(expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("unexpected value, diff: %v", pretty.Diff(expected, actual))
	}
}

// CheckRegexpEqual reports a test error unless value matches pattern.
func (t T) CheckRegexpEqual(value, pattern string) {
	t.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Errorf("invalid pattern %q: %v", pattern, err)
		return
	}
	if !re.MatchString(value) {
		t.Errorf("%q does not match %q", value, pattern)
	}
}

// Assert stops the test unless cond holds.
func (t T) Assert(cond bool) {
	t.Helper()
	if !cond {
		t.Fatal("assertion failed")
	}
}

// AssertWithf stops the test with the formatted message unless cond holds.
func (t T) AssertWithf(cond bool, format string, args ...interface{}) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// AssertEqual stops the test unless expected == actual.
func (t T) AssertEqual(expected, actual interface{}) {
	t.Helper()
	if expected != actual {
		t.Fatalf("expected %v but got %v", expected, actual)
	}
}

// AssertDeepEqual stops the test with a pretty diff unless the two values
// are deeply equal.
func (t T) AssertDeepEqual(expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("unexpected value, diff: %v", pretty.Diff(expected, actual))
	}
}
