package signature

import "errors"

// Sentinel errors for signature construction.
var (
	// ErrEmptyName indicates the callable name is empty.
	ErrEmptyName = errors.New("signature: callable name is empty")

	// ErrNegativeConstantArgs indicates numConstantArgs is negative.
	ErrNegativeConstantArgs = errors.New("signature: negative constant argument count")

	// ErrTooManyConstantArgs indicates numConstantArgs exceeds the arity.
	ErrTooManyConstantArgs = errors.New("signature: constant argument count exceeds arity")

	// ErrNilSource indicates a nil ArgSource was provided.
	ErrNilSource = errors.New("signature: argument source is nil")

	// ErrConstantUnavailable indicates a constant argument's value could
	// not be fetched from the argument source.
	ErrConstantUnavailable = errors.New("signature: constant argument value unavailable")
)
