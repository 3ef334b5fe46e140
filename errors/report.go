package errors

import (
	"go/build"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

const unknown string = "unknown"

// ReportableThrowSite is the structured, log-shippable view of a raise
// point: the site header plus the resolved frames below it, innermost
// (the throw point) first.
type ReportableThrowSite struct {
	File     string  `json:"file,omitempty"`
	Line     int     `json:"line,omitempty"`
	Function string  `json:"function,omitempty"`
	Frames   []Frame `json:"frames,omitempty"`
}

// ExtractThrowSite builds a ReportableThrowSite from the given error.
//
// It understands three shapes: errors raised through Throw (the recorded
// site and stack are used directly), errors exposing a StackTrace-style
// method from github.com/pkg/errors and compatible packages (resolved
// reflectively, so none of them becomes a hard dependency), and anything
// else, for which it returns nil.
func ExtractThrowSite(err error) *ReportableThrowSite {
	if err == nil {
		return nil
	}

	if c := findContainer(err); c != nil {
		site := c.ThrowSite()
		if site == nil {
			return nil
		}
		r := &ReportableThrowSite{
			File:     site.File,
			Line:     site.Line,
			Function: site.Function,
		}
		if site.stack != nil {
			r.Frames = filterFrames(extractFrames([]uintptr(*site.stack)))
		}
		return r
	}

	method := extractReflectedStacktraceMethod(err)
	if !method.IsValid() {
		return nil
	}
	pcs := extractPcs(method)
	if len(pcs) == 0 {
		return nil
	}

	frames := filterFrames(extractFrames(pcs))
	if len(frames) == 0 {
		return nil
	}
	r := &ReportableThrowSite{Frames: frames}
	// The innermost frame stands in for the unrecorded site header.
	first := frames[0]
	r.File = first.AbsPath
	if r.File == "" {
		r.File = first.Filename
	}
	r.Line = first.Lineno
	if first.Module != "" {
		r.Function = first.Module + "." + first.Function
	} else {
		r.Function = first.Function
	}
	return r
}

// extractReflectedStacktraceMethod finds a stack accessor on err without
// importing the package that defined it.
func extractReflectedStacktraceMethod(err error) reflect.Value {
	var method reflect.Value

	// https://github.com/pingcap/errors
	methodGetStackTracer := reflect.ValueOf(err).MethodByName("GetStackTracer")
	// https://github.com/pkg/errors
	methodStackTrace := reflect.ValueOf(err).MethodByName("StackTrace")
	// https://github.com/go-errors/errors
	methodStackFrames := reflect.ValueOf(err).MethodByName("StackFrames")

	if methodGetStackTracer.IsValid() {
		stacktracer := methodGetStackTracer.Call(nil)[0]
		stacktracerStackTrace := reflect.ValueOf(stacktracer).MethodByName("StackTrace")

		if stacktracerStackTrace.IsValid() {
			method = stacktracerStackTrace
		}
	}

	if methodStackTrace.IsValid() {
		method = methodStackTrace
	}

	if methodStackFrames.IsValid() {
		method = methodStackFrames
	}

	return method
}

func extractPcs(method reflect.Value) []uintptr {
	var pcs []uintptr

	stacktrace := method.Call(nil)[0]

	if stacktrace.Kind() != reflect.Slice {
		return nil
	}

	for i := 0; i < stacktrace.Len(); i++ {
		pc := stacktrace.Index(i)

		switch pc.Kind() {
		case reflect.Uintptr:
			pcs = append(pcs, uintptr(pc.Uint()))
		case reflect.Struct:
			for _, fieldName := range []string{"ProgramCounter", "PC"} {
				field := pc.FieldByName(fieldName)
				if !field.IsValid() {
					continue
				}
				if field.Kind() == reflect.Uintptr {
					pcs = append(pcs, uintptr(field.Uint()))
					break
				}
			}
		}
	}

	return pcs
}

// Frame represents a function call and its metadata, associated with a
// ReportableThrowSite.
type Frame struct {
	Function string `json:"function,omitempty"`
	// Module is the Go package's import path.
	Module   string `json:"module,omitempty"`
	Filename string `json:"filename,omitempty"`
	AbsPath  string `json:"abs_path,omitempty"`
	Lineno   int    `json:"lineno,omitempty"`
	InApp    bool   `json:"in_app,omitempty"`
}

// NewFrame assembles a reportable frame out of runtime.Frame.
func NewFrame(f runtime.Frame) Frame {
	var abspath, relpath string
	// NOTE: f.File paths historically use forward slash as path separator
	// even on Windows, though this is not yet documented, see
	// https://golang.org/issues/3335. In any case, filepath.IsAbs can work
	// with paths with either slash or backslash on Windows.
	switch {
	case f.File == "":
		relpath = unknown
		// Leave abspath empty to be omitted when serializing as JSON.
		abspath = ""
	case filepath.IsAbs(f.File):
		abspath = f.File
		relpath = ""
	default:
		// f.File is a relative path. This may happen when the binary is
		// built with the -trimpath flag.
		relpath = f.File
		abspath = ""
	}

	function := f.Function
	var pkg string

	if function != "" {
		pkg, function = splitQualifiedFunctionName(function)
	}

	frame := Frame{
		AbsPath:  abspath,
		Filename: relpath,
		Lineno:   f.Line,
		Module:   pkg,
		Function: function,
	}

	frame.InApp = isInAppFrame(frame)

	return frame
}

// splitQualifiedFunctionName splits a package path-qualified function name
// into package name and function name. Such qualified names are found in
// runtime.Frame.Function values.
func splitQualifiedFunctionName(name string) (pkg string, fun string) {
	pkg = packageName(name)
	fun = strings.TrimPrefix(name, pkg+".")
	return
}

// extractFrames resolves program counters into frames, innermost first.
func extractFrames(pcs []uintptr) []Frame {
	var frames []Frame
	callersFrames := runtime.CallersFrames(pcs)

	for {
		callerFrame, more := callersFrames.Next()

		frames = append(frames, NewFrame(callerFrame))

		if !more {
			break
		}
	}

	return frames
}

// filterFrames drops frames internal to Go itself; they carry no
// information about the raise.
func filterFrames(frames []Frame) []Frame {
	if len(frames) == 0 {
		return nil
	}

	filteredFrames := make([]Frame, 0, len(frames))

	for _, frame := range frames {
		if frame.Module == "runtime" || frame.Module == "testing" {
			continue
		}
		filteredFrames = append(filteredFrames, frame)
	}

	return filteredFrames
}

func isInAppFrame(frame Frame) bool {
	if strings.HasPrefix(frame.AbsPath, build.Default.GOROOT) ||
		strings.Contains(frame.Module, "vendor") ||
		strings.Contains(frame.Module, "third_party") {
		return false
	}

	return true
}

// packageName returns the package part of the symbol name, or the empty
// string if there is none.
// It replicates https://golang.org/pkg/debug/gosym/#Sym.PackageName,
// avoiding a dependency on debug/gosym.
func packageName(name string) string {
	// A prefix of "go." or "type." is a compiler-generated symbol that
	// doesn't belong to any package.
	// See variable reservedimports in cmd/compile/internal/gc/subr.go
	if strings.HasPrefix(name, "go.") || strings.HasPrefix(name, "type.") {
		return ""
	}

	pathend := strings.LastIndex(name, "/")
	if pathend < 0 {
		pathend = 0
	}

	if i := strings.Index(name[pathend:], "."); i != -1 {
		return name[:pathend+i]
	}
	return ""
}
