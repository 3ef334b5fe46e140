package errors

import (
	"fmt"
	"strings"
)

// DiagnosticInformation renders everything known about err as one
// human-readable block, one item per line:
//
//	Thrown at /src/alloc.go:14 in main.allocateBuffer
//	Dynamic error type: *errors.withInfo
//	Error message: allocation failed
//	"errmsg" = "writing lots of zeros failed"
//
// The throw-site line reads "Thrown at unknown location" when the raise
// path did not go through Throw. The message line is omitted when the
// error has no message. Attached fields follow in insertion order, one
// line each; a kind attached more than once appears exactly once, at its
// first position, with the last value written.
//
// An error without the enrichment capability still gets the type and
// message lines; nil yields a fixed placeholder. The rendering is
// deterministic for identical inputs and never panics.
func DiagnosticInformation(err error) string {
	if err == nil {
		return "No diagnostic information available.\n"
	}
	var sb strings.Builder
	c := findContainer(err)
	identity := identityOf(err)
	if c != nil {
		sb.WriteString(c.ThrowSite().String())
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "Dynamic error type: %T\n", identity)
	if msg := identity.Error(); msg != "" {
		sb.WriteString("Error message: " + msg + "\n")
	}
	if c != nil {
		for _, e := range c.entries {
			fmt.Fprintf(&sb, "%q = %q\n", e.kind.infoName(), fmt.Sprint(e.val))
		}
	}
	return sb.String()
}

// identityOf returns the chain element whose dynamic type is reported:
// the outermost error exposing the attachment container, or err itself
// when none does. Reporting the container bearer means an auto-wrapped
// error shows the adapter type, matching what errors.As would find first.
func identityOf(err error) error {
	for c := err; c != nil; c = UnwrapOnce(c) {
		if _, ok := c.(containerProvider); ok {
			return c
		}
	}
	return err
}
