package interfaces

import "mt5-bridge/src/models"

// -----------------------------------------------------------------------------
// ICommandRunner is the shared command surface both front-ends dispatch to.
// -----------------------------------------------------------------------------

type ICommandRunner interface {

	// -----------------------------------------------------------------------------

	// Run executes one named command with positional string arguments and
	// returns its payload, or an error carrying a human-readable message.
	Run(command string, args []string) (models.MPayload, error)

	// -----------------------------------------------------------------------------

	// Connected reports whether the shared terminal session is established.
	Connected() bool
}
