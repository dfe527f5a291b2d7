package nn

import "errors"

// Sentinel errors returned by layers. Callers match them with errors.Is;
// returned errors wrap them with the offending shapes or names.
var (
	// ErrShapeMismatch reports inputs whose dimensions disagree.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrNotImplemented reports an operation the layer does not provide.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidArity reports an unsupported number of inputs or outputs.
	ErrInvalidArity = errors.New("invalid number of tensors")

	// ErrAlreadyConfigured reports a second Configure call.
	ErrAlreadyConfigured = errors.New("layer already configured")

	// ErrNotConfigured reports Prepare or Forward before Configure.
	ErrNotConfigured = errors.New("layer not configured")

	// ErrUnknownLayer reports a type name missing from a Registry.
	ErrUnknownLayer = errors.New("unknown layer type")
)
