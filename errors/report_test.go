package errors_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/errinfo-go/errinfo/errors"
	"github.com/errinfo-go/errinfo/errors/internal"
	"github.com/errinfo-go/errinfo/errors/testutils"

	"github.com/kr/pretty"
	pkgErr "github.com/pkg/errors"
)

func TestExtractThrowSite(t *testing.T) {
	baseErr := errors.New("hello")

	t.Run("throw", func(t *testing.T) {
		err := internal.Run(func() error { return errors.Throw(baseErr) })
		checkThrowFrames(t, err)
	})

	t.Run("pkgErr", func(t *testing.T) {
		err := internal.Run(func() error { return pkgErr.WithStack(baseErr) })
		checkThrowFrames(t, err)
	})

	t.Run("pkgFundamental", func(t *testing.T) {
		err := internal.Run(func() error { return pkgErr.New("hello") })
		checkThrowFrames(t, err)
	})

	t.Run("stackless", func(t *testing.T) {
		if r := errors.ExtractThrowSite(baseErr); r != nil {
			t.Fatalf("expected nil for a stackless error, got %+v", r)
		}
		if r := errors.ExtractThrowSite(nil); r != nil {
			t.Fatal("expected nil for a nil error")
		}
	})
}

func TestExtractThrowSiteDepth(t *testing.T) {
	tt := testutils.T{T: t}

	r := errors.ExtractThrowSite(makeErr())
	tt.AssertWithf(r != nil, "ExtractThrowSite returned nil")
	tt.Check(strings.HasSuffix(r.Function, "makeErr"),
		fmt.Sprintln("site function:", r.Function))
	tt.Check(strings.HasSuffix(r.File, "report_test.go"),
		fmt.Sprintln("site file:", r.File))
}

func makeErr() error  { return makeErr2() }
func makeErr2() error { return errors.ThrowDepth(errors.New("boom"), 1) }

func checkThrowFrames(t *testing.T, err error) {
	tt := testutils.T{T: t}

	t.Logf("looking at err %# v", pretty.Formatter(err))

	r := errors.ExtractThrowSite(err)
	tt.AssertWithf(r != nil, "ExtractThrowSite returned nil")
	tt.AssertWithf(len(r.Frames) >= 3, "too few frames: %d", len(r.Frames))

	tt.Check(r.File != "", "missing site file")
	tt.Check(r.Line != 0, "missing site line")

	for i, f := range r.Frames {
		t.Logf("frame %d:", i)
		t.Logf("absolute path: %s", f.AbsPath)
		t.Logf("file: %s", f.Filename)
		t.Logf("line: %d", f.Lineno)
		t.Logf("module: %s", f.Module)
		t.Logf("function: %s", f.Function)
	}

	// The innermost frame is the callback passed to internal.Run; the
	// two frames above it are Run2 and Run.
	first := r.Frames[0]
	tt.Check(strings.HasSuffix(first.AbsPath, "report_test.go") ||
		strings.HasSuffix(first.Filename, "report_test.go"),
		fmt.Sprintln("innermost frame:", first.AbsPath, first.Filename))

	for i := 1; i <= 2; i++ {
		f := r.Frames[i]
		tt.Check(strings.HasSuffix(f.AbsPath, "internal/run.go") ||
			strings.HasSuffix(f.Filename, "internal/run.go"),
			fmt.Sprintln("frame", i, "file:", f.AbsPath, f.Filename))

		tt.Check(strings.HasSuffix(f.Module, "errors/internal"),
			fmt.Sprintln("frame", i, "module:", f.Module))

		tt.Check(strings.HasPrefix(f.Function, "Run"),
			fmt.Sprintln("frame", i, "function:", f.Function))
	}

	// Run2's call site is below Run's in run.go.
	tt.Check(r.Frames[1].Lineno != 0 && r.Frames[2].Lineno != 0 &&
		r.Frames[1].Lineno > r.Frames[2].Lineno,
		fmt.Sprintln("line order:", r.Frames[1].Lineno, r.Frames[2].Lineno))
}
