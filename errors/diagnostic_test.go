package errors_test

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/errinfo-go/errinfo/errors"
	"github.com/errinfo-go/errinfo/errors/testutils"
)

var contextInfo = errors.NewInfo[string]("context")

// plainFailure carries no container of its own; Throw has to wrap it.
type plainFailure struct{}

func (plainFailure) Error() string { return "out of memory" }

func raisePlain() error {
	return errors.Throw(plainFailure{})
}

func TestDumpNoAnnotations(t *testing.T) {
	dump := errors.DiagnosticInformation(newAllocationFailed())
	expected := "Thrown at unknown location\n" +
		"Dynamic error type: errors_test.allocationFailed\n" +
		"Error message: allocation failed\n"
	if dump != expected {
		t.Fatalf("expected:\n%vbut got:\n%v", expected, dump)
	}
}

func TestDumpAnnotated(t *testing.T) {
	err := errors.Attach(newAllocationFailed(), contextInfo, "writing zeros")
	dump := errors.DiagnosticInformation(err)
	expected := "Thrown at unknown location\n" +
		"Dynamic error type: errors_test.allocationFailed\n" +
		"Error message: allocation failed\n" +
		"\"context\" = \"writing zeros\"\n"
	if dump != expected {
		t.Fatalf("expected:\n%vbut got:\n%v", expected, dump)
	}
}

func TestDumpInsertionOrder(t *testing.T) {
	err := errors.Attach(newAllocationFailed(), contextInfo, "writing zeros")
	err = errors.Attach(err, errMsg, "buffer request rejected")
	dump := errors.DiagnosticInformation(err)
	expected := "Thrown at unknown location\n" +
		"Dynamic error type: errors_test.allocationFailed\n" +
		"Error message: allocation failed\n" +
		"\"context\" = \"writing zeros\"\n" +
		"\"errmsg\" = \"buffer request rejected\"\n"
	if dump != expected {
		t.Fatalf("expected:\n%vbut got:\n%v", expected, dump)
	}
}

func TestSelectiveLookupScenario(t *testing.T) {
	err := errors.Attach(newAllocationFailed(), contextInfo, "writing zeros")

	got, ok := errors.Get(err, contextInfo)
	if !ok || got != "writing zeros" {
		t.Fatalf("selective lookup failed: %q (ok=%v)", got, ok)
	}
	if _, ok := errors.Get(err, retryCount); ok {
		t.Fatal("retry_count must be absent")
	}
}

func TestDumpAutoWrapped(t *testing.T) {
	tt := testutils.T{T: t}

	err := raisePlain()
	dump := errors.DiagnosticInformation(err)
	lines := strings.Split(strings.TrimSuffix(dump, "\n"), "\n")
	tt.AssertWithf(len(lines) == 3, "unexpected dump:\n%s", dump)

	// The reported type is the adapter's, not plainFailure; the message
	// is still the original's. Same trade as the source mechanism.
	tt.CheckRegexpEqual(lines[0], `^Thrown at .*diagnostic_test\.go:\d+ in errors_test\.raisePlain$`)
	tt.CheckEqual("Dynamic error type: *errors.withInfo", lines[1])
	tt.CheckEqual("Error message: out of memory", lines[2])
}

func TestDumpIdentityThroughWrapping(t *testing.T) {
	err := fmt.Errorf("write failed: %w", newAllocationFailed())
	dump := errors.DiagnosticInformation(err)
	expected := "Thrown at unknown location\n" +
		"Dynamic error type: errors_test.allocationFailed\n" +
		"Error message: allocation failed\n"
	if dump != expected {
		t.Fatalf("expected:\n%vbut got:\n%v", expected, dump)
	}
}

func TestDumpPlainError(t *testing.T) {
	dump := errors.DiagnosticInformation(io.EOF)
	expected := "Dynamic error type: *errors.errorString\n" +
		"Error message: EOF\n"
	if dump != expected {
		t.Fatalf("expected:\n%vbut got:\n%v", expected, dump)
	}
}

func TestDumpNil(t *testing.T) {
	if dump := errors.DiagnosticInformation(nil); dump != "No diagnostic information available.\n" {
		t.Fatalf("unexpected nil dump: %q", dump)
	}
}
