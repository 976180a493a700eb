package gridcode

import "errors"

// Sentinel errors returned by the codec and the operations built on it.
// Wrapped errors carry the offending value, so callers can match with
// errors.Is while users still see what to fix.
var (
	// ErrOutOfRange indicates a latitude or longitude outside valid degree bounds
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrInvalidFormat indicates a grid code of the wrong length
	ErrInvalidFormat = errors.New("invalid grid code format")

	// ErrInvalidCharacter indicates a character outside the base32 alphabet
	ErrInvalidCharacter = errors.New("invalid character in grid code")

	// ErrInvalidArgument indicates a non-positive radius or result limit
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyInput indicates an aggregate operation on an empty collection
	ErrEmptyInput = errors.New("empty input")
)
