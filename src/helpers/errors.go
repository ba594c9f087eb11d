package helpers

import "fmt"

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type BridgeError struct {
	Message string
	Cause   error
}

func (e *BridgeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *BridgeError) Unwrap() error {
	return e.Cause
}

// Distinct error kinds for the command surface. Every one of these is caught
// at the operation boundary and converted to a result envelope; none of them
// may escape to the transport as an unhandled fault.
type ConnectionError struct{ BridgeError } // terminal unavailable or not authenticated
type AuthError struct{ BridgeError }       // explicit login rejected
type DataError struct{ BridgeError }       // a query returned no usable data
type OrderError struct{ BridgeError }      // order rejected, terminal comment surfaced
type NotFoundError struct{ BridgeError }   // referenced position ticket does not exist
type ParseError struct{ BridgeError }      // malformed client input at the transport boundary
