// Selectively reading one attached field at the top-level handler instead
// of dumping everything.
package main

import (
	"fmt"
	"os"

	"github.com/errinfo-go/errinfo/errors"
)

var errMsg = errors.NewInfo[string]("errmsg")

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
	if _, err := writeLotsOfZeros(); err != nil {
		// Get never fails: a kind that was never attached simply reports
		// absent.
		if msg, ok := errors.Get(err, errMsg); ok {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(1)
	}
}
