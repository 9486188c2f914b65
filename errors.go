package mkbtrfs

import "fmt"

// ArgumentError reports a setter input that violates a documented
// precondition, such as an over-long label. It is returned synchronously by
// the setter; the Options value the setter was called on is left unchanged.
type ArgumentError struct {
	// Option is the long option name the input was destined for, without
	// the leading dashes (e.g. "label", "nodesize").
	Option string

	// Value is the rejected input, rendered as a string.
	Value string

	// Reason describes the violated precondition.
	Reason string
}

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Option, e.Value, e.Reason)
}
