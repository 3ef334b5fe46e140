package errors

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// DiagnosticObject exposes err's diagnostics as a structured zap value:
//
//	logger.Error("request failed",
//		zap.Object("diagnostics", errors.DiagnosticObject(err)))
//
// The encoded object carries the dynamic type, the message, the throw
// site when one was recorded, and every attached field in insertion
// order. It reports the same identity as DiagnosticInformation, so log
// output and dump output never disagree about what was raised.
func DiagnosticObject(err error) zapcore.ObjectMarshaler {
	return diagObject{err: err}
}

type diagObject struct {
	err error
}

var _ zapcore.ObjectMarshaler = diagObject{}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (d diagObject) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if d.err == nil {
		return nil
	}
	identity := identityOf(d.err)
	enc.AddString("type", fmt.Sprintf("%T", identity))
	enc.AddString("message", identity.Error())
	c := findContainer(d.err)
	if c == nil {
		return nil
	}
	if site := c.ThrowSite(); site != nil {
		enc.AddString("thrown_at", fmt.Sprintf("%s:%d", site.File, site.Line))
		if site.Function != "" {
			enc.AddString("function", site.Function)
		}
	}
	if len(c.entries) == 0 {
		return nil
	}
	return enc.AddArray("fields", entryList(c.entries))
}

// entryList renders entries as an array of {name, value} objects, so the
// insertion order survives encoders that reorder object keys.
type entryList []entry

var _ zapcore.ArrayMarshaler = entryList(nil)

// MarshalLogArray implements zapcore.ArrayMarshaler.
func (el entryList) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, e := range el {
		if err := enc.AppendObject(entryPair(e)); err != nil {
			return err
		}
	}
	return nil
}

type entryPair entry

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (p entryPair) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("name", p.kind.infoName())
	return enc.AddReflected("value", p.val)
}
