package models

// MJournalEntry is one row of the command audit trail.
type MJournalEntry struct {
	Command   string   `json:"command"`
	Args      []string `json:"args"`
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	ElapsedMS float64  `json:"elapsed_ms"`
	CreatedAt int64    `json:"created_at"`
}
