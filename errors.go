package psyche

import "errors"

// Sentinel errors for configuration and lookup failures.
// All validation in this package is eager: a returned error means the input
// is invalid as given and retrying the same call cannot succeed.
var (
	ErrUnknownEmotion  = errors.New("unknown emotion")
	ErrUnknownTrait    = errors.New("unknown trait")
	ErrUnknownCategory = errors.New("unknown emotion category")
	ErrUnknownOperator = errors.New("unknown comparison operator")
	ErrUnknownPersona  = errors.New("persona not part of relationship")
	ErrOutOfRange      = errors.New("value out of range")
	ErrNotFound        = errors.New("not found")
	ErrBadStructured   = errors.New("malformed structured record")
)
