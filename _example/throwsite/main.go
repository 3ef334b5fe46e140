// Raising a plain error type through Throw: the error is auto-wrapped
// with the enrichment capability and the raise point is recorded, at the
// cost of the dump reporting the adapter's type instead of the original's.
// The handler ships the diagnostics through zap.
package main

import (
	"os"

	"go.uber.org/zap"

	"github.com/errinfo-go/errinfo/errors"
)

var errMsg = errors.NewInfo[string]("errmsg")

// allocationFailed deliberately does not embed a container.
type allocationFailed struct{}

func (allocationFailed) Error() string { return "allocation failed" }

const maxBufferSize = 1 << 20

func allocateBuffer(size int) ([]byte, error) {
	if size < 0 || size > maxBufferSize {
		return nil, errors.Throw(allocationFailed{})
	}
	return make([]byte, size), nil
}

func writeLotsOfZeros() ([]byte, error) {
	buf, err := allocateBuffer(int(^uint(0) >> 1))
	if err != nil {
		return nil, errors.Attach(err, errMsg, "writing lots of zeros failed")
	}
	for i := range buf {
		buf[i] = 0
	}
	return buf, nil
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if _, err := writeLotsOfZeros(); err != nil {
		logger.Error("write failed",
			zap.Object("diagnostics", errors.DiagnosticObject(err)))
		os.Exit(1)
	}
}
