package common

import "errors"

// Sentinel errors shared by the public packages. Each package re-exports the
// ones it returns so callers can match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnknownMember   = errors.New("unknown member")
	ErrUnknownKey      = errors.New("unknown key")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNotWritable     = errors.New("member is not writable")
	ErrFormat          = errors.New("invalid format")
	ErrInvalidCast     = errors.New("invalid cast")
)

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"
