package journal

import "errors"

// Sentinel error kinds, wrapped with %w so callers can errors.Is against
// them while the message chain still carries full context (spec.md §7).
var (
	ErrMalformed         = errors.New("malformed journal")
	ErrWrongFileKind     = errors.New("wrong file kind")
	ErrTimestampOverflow = errors.New("timestamp exceeds u64 microseconds")
)
