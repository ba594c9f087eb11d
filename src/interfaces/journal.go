package interfaces

import "mt5-bridge/src/models"

// -----------------------------------------------------------------------------
// IJournal defines the contract for the command audit trail.
// -----------------------------------------------------------------------------

type IJournal interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the backing store.
	Initialize() error

	// -----------------------------------------------------------------------------

	// Record appends one executed command to the trail.
	Record(entry models.MJournalEntry) error

	// -----------------------------------------------------------------------------

	// Recent returns up to limit entries, newest first.
	Recent(limit int) ([]models.MJournalEntry, error)

	// -----------------------------------------------------------------------------

	// Close the journal store
	Close() error
}
