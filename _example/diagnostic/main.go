// Annotating an in-flight error and dumping every attached field at the
// top-level handler.
package main

import (
	"fmt"
	"os"

	"github.com/errinfo-go/errinfo/errors"
)

// errMsg carries a description of what the failing frame was doing.
var errMsg = errors.NewInfo[string]("errmsg")

// allocationFailed is raised when a buffer request cannot be satisfied.
// Embedding *errors.Container gives it the enrichment capability, so the
// reported type stays allocationFailed.
type allocationFailed struct {
	*errors.Container
}

func (allocationFailed) Error() string { return "allocation failed" }

const maxBufferSize = 1 << 20

func allocateBuffer(size int) ([]byte, error) {
	if size < 0 || size > maxBufferSize {
		return nil, errors.Throw(allocationFailed{Container: errors.NewContainer()})
	}
	return make([]byte, size), nil
}

func writeLotsOfZeros() ([]byte, error) {
	buf, err := allocateBuffer(int(^uint(0) >> 1))
	if err != nil {
		// Annotate and pass the same error on.
		return nil, errors.Attach(err, errMsg, "writing lots of zeros failed")
	}
	for i := range buf {
		buf[i] = 0
	}
	return buf, nil
}

func main() {
	if _, err := writeLotsOfZeros(); err != nil {
		fmt.Fprint(os.Stderr, errors.DiagnosticInformation(err))
		os.Exit(1)
	}
}
