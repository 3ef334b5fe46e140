package errors

import (
	"fmt"
	"io"
	"strings"
)

// Throw raises err with throw-site metadata captured at the call site.
//
// If err already exposes an attachment container anywhere in its chain,
// the site is stamped on it (the first stamp wins, so a rethrow higher up
// does not move the origin) and err is returned unchanged. Otherwise err
// is wrapped in a minimal adapter that adds the enrichment capability: it
// forwards the original's message and exposes the original through
// Unwrap, but carries its own container. Diagnostic output then reports
// the adapter's dynamic type instead of the original's; that is the
// accepted cost of not deriving every error type from Container.
//
// Throw(nil) returns nil. Use it at the point of origination:
//
//	if buf == nil {
//		return errors.Throw(allocationFailed{})
//	}
func Throw(err error) error {
	// Skip the frame of Throw itself, mirroring the behavior of
	// WithStack() in github.com/pkg/errors.
	return ThrowDepth(err, 1)
}

// ThrowDepth annotates err with a throw site starting from the given call
// depth. The value zero identifies the caller of ThrowDepth itself.
// See the documentation of Throw() for more details.
func ThrowDepth(err error, depth int) error {
	if err == nil {
		return nil
	}
	site := captureThrowSite(depth + 1)
	if c := findContainer(err); c != nil {
		c.setThrowSite(site)
		return err
	}
	w := &withInfo{cause: err, container: NewContainer()}
	w.container.setThrowSite(site)
	return w
}

// withInfo adapts an arbitrary error to the enrichment capability. It
// holds the original and forwards its message, while independently
// carrying the attachment collection. Composition, not embedding: the
// original error stays untouched and reachable through Unwrap.
type withInfo struct {
	cause     error
	container *Container
}

// compiler enforced interface conformance checks
var (
	_ error             = (*withInfo)(nil)
	_ fmt.Formatter     = (*withInfo)(nil)
	_ containerProvider = (*withInfo)(nil)
)

// Error forwards the conventional message of the original error.
func (w *withInfo) Error() string { return w.cause.Error() }

// Unwrap returns the original error.
func (w *withInfo) Unwrap() error { return w.cause }
func (w *withInfo) Cause() error  { return w.cause }

func (w *withInfo) diagContainer() *Container { return w.container }

// Format implements the fmt.Formatter interface. %+v renders the full
// diagnostic block followed by the stack recorded at the throw site, when
// one was captured; every other verb renders the plain message.
func (w *withInfo) Format(st fmt.State, _ rune) {
	if !st.Flag('+') {
		_, _ = io.WriteString(st, w.Error())
		return
	}
	_, _ = io.WriteString(st, DiagnosticInformation(w))
	if stack := w.container.ThrowSite().Stack(); stack != nil {
		stackTraceString := stack.StackTrace().String()
		if stackTraceString != "" {
			_, _ = io.WriteString(st, "  -- Stack trace:")
			_, _ = io.WriteString(st, strings.ReplaceAll(
				"\n"+stackTraceString,
				"\n", string(detailSep)))
		}
	}
}
