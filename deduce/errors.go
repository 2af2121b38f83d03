// Package deduce implements the named deduction functions of spec §4.4:
// small, single-purpose extractors that turn the input dictionaries into
// one semantic value each, logging exactly one RESOLVE line on success and
// failing fast with a typed, nestable error otherwise.
package deduce

import (
	"fmt"

	"go.uber.org/zap"
)

// Error is the typed deduction error of spec §7: it names the deduction
// and nests the underlying cause.
type Error struct {
	Deduction string
	Cause     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("deduction %q failed: %v", e.Deduction, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

func wrap(deduction string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Deduction: deduction, Cause: cause}
}

// logger is the package-wide structured logger used for RESOLVE lines. It
// defaults to a no-op logger so deduce stays a pure-modulo-logging package
// (spec §1); encoder.WithLogger rewires it through SetLogger.
var logger = zap.NewNop()

// SetLogger installs the logger used for RESOLVE diagnostics. Safe to call
// before starting any encodes; not intended to be changed concurrently
// with in-flight encodes (spec §5 treats the logger as the one piece of
// shared mutable state, guarded by the caller being disciplined about when
// it reconfigures it).
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func resolve(name string, fields ...zap.Field) {
	logger.Debug("RESOLVE "+name, fields...)
}
