package concise

import "errors"

// Errors raised by panicking at the public boundary. They mirror the failure
// modes of the collection contract: callers that stay inside the documented
// domain never see them.
var (
	// ErrOutOfRange signals an element outside [0, MaxAllowedInteger] or a
	// positional index outside [0, Size()).
	ErrOutOfRange = errors.New("concise: element or index out of range")

	// ErrNoSuchElement signals First/Last on an empty set or Next past the
	// end of an iterator.
	ErrNoSuchElement = errors.New("concise: no such element")

	// ErrConcurrentModification signals an iterator used after the owning
	// set mutated.
	ErrConcurrentModification = errors.New("concise: set modified during iteration")

	// ErrInvalidArgument signals a malformed argument, such as
	// ContainsAtLeast with n < 1 or ToArray with an undersized buffer.
	ErrInvalidArgument = errors.New("concise: invalid argument")
)
