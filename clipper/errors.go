package clipper

import "errors"

// Decode and lift failure taxonomy. Decode-time failures never abort a sweep:
// Decode degrades to a one byte unimplemented instruction and returns the
// sentinel alongside it so the host can surface a diagnostic. Only a nil byte
// source is a contract violation with no degraded result.
var (
	ErrTruncated             = errors.New("truncated window")
	ErrBadOpcode             = errors.New("bad opcode")
	ErrUnknownAddressingMode = errors.New("unknown addressing mode")
	ErrUnimplemented         = errors.New("unimplemented instruction")
	ErrNestedDelayedBranch   = errors.New("nested delayed branch")
	ErrNilSource             = errors.New("nil byte source")
	ErrNilInstruction        = errors.New("nil instruction")
)
